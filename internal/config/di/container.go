package di

import (
	"github.com/GateBay/nft-marketplace/internal/api"
	"github.com/GateBay/nft-marketplace/internal/elastic_search"
	"github.com/GateBay/nft-marketplace/internal/gateway"
	"github.com/GateBay/nft-marketplace/internal/messenger"
	"github.com/GateBay/nft-marketplace/internal/repository"
	"github.com/GateBay/nft-marketplace/internal/settlement"
	"github.com/GateBay/nft-marketplace/internal/tokens"
	"github.com/sarulabs/di/v2"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetTokenService() tokens.Service {
	return c.ctn.Get("tokens").(tokens.Service)
}

func (c *Container) GetListingRepo() repository.ListingRepository {
	return c.ctn.Get("listing.repo").(repository.ListingRepository)
}

func (c *Container) GetPendingPurchaseRepo() repository.PendingPurchaseRepository {
	return c.ctn.Get("pending.repo").(repository.PendingPurchaseRepository)
}

func (c *Container) GetMarketActionRepo() repository.MarketActionRepository {
	return c.ctn.Get("marketAction.repo").(repository.MarketActionRepository)
}

func (c *Container) GetApprovalGateway() gateway.ApprovalGateway {
	return c.ctn.Get("gateway").(gateway.ApprovalGateway)
}

func (c *Container) GetSettlementEngine() settlement.Engine {
	return c.ctn.Get("settlement").(settlement.Engine)
}

func (c *Container) GetApi() api.Server {
	return c.ctn.Get("api").(api.Server)
}
