package repository

import (
	"encoding/json"
	"errors"

	"github.com/GateBay/nft-marketplace/internal/elastic_search"
	"github.com/GateBay/nft-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
)

var (
	ErrMarketActionNotFound = errors.New("market action not found")
)

type MarketActionRepository interface {
	GetActionsByTokenId(tokenId uint64, size, page int) ([]entity.MarketAction, int64, error)
	GetBestSale(tokenId uint64) (*entity.MarketAction, error)
}

type marketActionRepository struct {
	elastic elastic_search.Index
}

func NewMarketActionRepository(elastic elastic_search.Index) MarketActionRepository {
	return marketActionRepository{elastic}
}

func (r marketActionRepository) GetActionsByTokenId(tokenId uint64, size, page int) ([]entity.MarketAction, int64, error) {
	query := elastic.NewTermQuery("tokenId", tokenId)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("timestamp", false).
		Size(size).
		From((page-1)*size))

	return r.findMany(result, err)
}

func (r marketActionRepository) GetBestSale(tokenId uint64) (*entity.MarketAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("tokenId", tokenId),
		elastic.NewTermQuery("action.keyword", string(entity.SaleAction)),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("cost", false).
		Size(1))

	return r.findOne(result, err)
}

func (r marketActionRepository) findOne(results *elastic.SearchResult, err error) (*entity.MarketAction, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrMarketActionNotFound
	}

	var action entity.MarketAction
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &action)

	return &action, err
}

func (r marketActionRepository) findMany(results *elastic.SearchResult, err error) ([]entity.MarketAction, int64, error) {
	actions := make([]entity.MarketAction, 0)

	if err != nil {
		return actions, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var action entity.MarketAction
		if err := json.Unmarshal(hit.Source, &action); err == nil {
			actions = append(actions, action)
		}
	}

	return actions, results.TotalHits(), nil
}
