package gateway

import (
	"time"

	"github.com/GateBay/nft-marketplace/internal/elastic_search"
	"github.com/GateBay/nft-marketplace/internal/entity"
	"github.com/GateBay/nft-marketplace/internal/event"
	"github.com/GateBay/nft-marketplace/internal/repository"
	"github.com/GateBay/nft-marketplace/internal/tokens"
	"go.uber.org/zap"
)

// ApprovalGateway owns every mutation of the listing store. A token is
// listed only when the token contract calls back OnApprove and delisted
// only by OnRevoke or a settled purchase; there is no other path.
type ApprovalGateway interface {
	OnApprove(callerId string, tokenId uint64, ownerId string, approvalId uint64, msg entity.ApproveMsg) error
	OnRevoke(callerId string, tokenId uint64) error
	RequestApproval(sellerId string, tokenId uint64, minPrice uint64) error
}

type approvalGateway struct {
	listings       repository.ListingRepository
	tokenService   tokens.Service
	elastic        elastic_search.Index
	trustedAccount string
}

func NewApprovalGateway(
	listings repository.ListingRepository,
	tokenService tokens.Service,
	elastic elastic_search.Index,
	trustedAccount string,
) ApprovalGateway {
	return approvalGateway{listings, tokenService, elastic, trustedAccount}
}

func (g approvalGateway) OnApprove(callerId string, tokenId uint64, ownerId string, approvalId uint64, msg entity.ApproveMsg) error {
	if callerId != g.trustedAccount {
		zap.L().With(zap.String("callerId", callerId), zap.Uint64("tokenId", tokenId)).Warn("Approve from untrusted caller")
		return entity.NewApproveNotAllowed()
	}

	if msg.MinPrice == 0 {
		return entity.NewMsgFormatMinPriceMissing("min_price must be a positive number")
	}

	listing := entity.Listing{
		TokenId:    tokenId,
		GateId:     msg.GateId,
		OwnerId:    ownerId,
		CreatorId:  msg.CreatorId,
		MinPrice:   msg.MinPrice,
		ApprovalId: approvalId,
	}

	// Replaces any previous listing for the token; the latest approval wins.
	g.listings.Insert(listing)

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("gateId", msg.GateId),
		zap.String("ownerId", ownerId),
		zap.Uint64("minPrice", msg.MinPrice),
		zap.Uint64("approvalId", approvalId),
	).Info("Marketplace listing")

	g.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), entity.MarketAction{
		TokenId:   tokenId,
		GateId:    msg.GateId,
		Action:    entity.ListedAction,
		From:      ownerId,
		MinPrice:  msg.MinPrice,
		Timestamp: time.Now().UnixNano(),
	}, elastic_search.TokenListed)

	event.EmitEvent(event.TokenListedEvent, listing)

	return nil
}

func (g approvalGateway) OnRevoke(callerId string, tokenId uint64) error {
	if callerId != g.trustedAccount {
		zap.L().With(zap.String("callerId", callerId), zap.Uint64("tokenId", tokenId)).Warn("Revoke from untrusted caller")
		return entity.NewRevokeNotAllowed()
	}

	listing, err := g.listings.Get(tokenId)
	if err != nil {
		return entity.NewTokenIdNotFound(tokenId)
	}

	g.listings.Remove(tokenId)

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("gateId", listing.GateId),
		zap.String("ownerId", listing.OwnerId),
	).Info("Marketplace delisting")

	g.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), entity.MarketAction{
		TokenId:   tokenId,
		GateId:    listing.GateId,
		Action:    entity.DelistedAction,
		From:      listing.OwnerId,
		MinPrice:  listing.MinPrice,
		Timestamp: time.Now().UnixNano(),
	}, elastic_search.TokenDelisted)

	event.EmitEvent(event.TokenDelistedEvent, listing)

	return nil
}

// RequestApproval forwards a seller's intent to the token contract and
// nothing more. The marketplace never trusts the seller's own claim of
// ownership; the token contract verifies it and calls back OnApprove.
func (g approvalGateway) RequestApproval(sellerId string, tokenId uint64, minPrice uint64) error {
	zap.L().With(
		zap.String("sellerId", sellerId),
		zap.Uint64("tokenId", tokenId),
		zap.Uint64("minPrice", minPrice),
	).Info("Relaying approval request")

	return g.tokenService.RequestApproval(sellerId, tokenId, minPrice)
}
