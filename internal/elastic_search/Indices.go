package elastic_search

import (
	"fmt"

	"github.com/GateBay/nft-marketplace/internal/config"
)

type Indices string

var (
	MarketActionIndex Indices = "marketaction"
	AnomalyIndex      Indices = "anomaly"
)

// Sets the network and returns the full string
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
