package di

import (
	"time"

	"github.com/GateBay/nft-marketplace/internal/api"
	"github.com/GateBay/nft-marketplace/internal/config"
	"github.com/GateBay/nft-marketplace/internal/elastic_search"
	"github.com/GateBay/nft-marketplace/internal/gateway"
	"github.com/GateBay/nft-marketplace/internal/messenger"
	"github.com/GateBay/nft-marketplace/internal/repository"
	"github.com/GateBay/nft-marketplace/internal/settlement"
	"github.com/GateBay/nft-marketplace/internal/tokens"
	"github.com/patrickmn/go-cache"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "cache",
		Build: func(ctn di.Container) (interface{}, error) {
			ttl := time.Duration(config.Get().RoyaltyCacheTtl) * time.Second
			if ttl == 0 {
				ttl = cache.NoExpiration
			}

			return cache.New(ttl, 10*time.Minute), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(), nil
		},
	},
	{
		Name: "tokens",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get().TokenContract

			client, err := tokens.NewClient(cfg.Url, cfg.Timeout, cfg.Debug)
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to create token contract client")
			}

			return tokens.NewTokenService(tokens.NewProvider(client)), nil
		},
	},
	{
		Name: "listing.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewListingRepository(), nil
		},
	},
	{
		Name: "pending.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewPendingPurchaseRepository(), nil
		},
	},
	{
		Name: "marketAction.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewMarketActionRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "gateway",
		Build: func(ctn di.Container) (interface{}, error) {
			return gateway.NewApprovalGateway(
				ctn.Get("listing.repo").(repository.ListingRepository),
				ctn.Get("tokens").(tokens.Service),
				ctn.Get("elastic").(elastic_search.Index),
				config.Get().TokenContract.Account,
			), nil
		},
	},
	{
		Name: "settlement",
		Build: func(ctn di.Container) (interface{}, error) {
			return settlement.NewEngine(
				ctn.Get("listing.repo").(repository.ListingRepository),
				ctn.Get("pending.repo").(repository.PendingPurchaseRepository),
				ctn.Get("tokens").(tokens.Service),
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("cache").(*cache.Cache),
				config.Get().PlatformAccount,
				config.Get().PlatformFee,
			), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("listing.repo").(repository.ListingRepository),
				ctn.Get("marketAction.repo").(repository.MarketActionRepository),
				ctn.Get("gateway").(gateway.ApprovalGateway),
				ctn.Get("settlement").(settlement.Engine),
			), nil
		},
	},
}
