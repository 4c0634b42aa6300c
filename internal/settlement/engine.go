package settlement

import (
	"time"

	"github.com/GateBay/nft-marketplace/internal/dev"
	"github.com/GateBay/nft-marketplace/internal/elastic_search"
	"github.com/GateBay/nft-marketplace/internal/entity"
	"github.com/GateBay/nft-marketplace/internal/event"
	"github.com/GateBay/nft-marketplace/internal/fee"
	"github.com/GateBay/nft-marketplace/internal/messenger"
	"github.com/GateBay/nft-marketplace/internal/repository"
	"github.com/GateBay/nft-marketplace/internal/tokens"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Engine drives a purchase from entry validation to its terminal state.
// BuyToken validates and hands the token transfer to the token contract;
// OnTransferResult resumes the purchase once the contract reports back.
// Between the two, the pending marker is the only record of the attempt.
type Engine interface {
	BuyToken(buyerId string, tokenId uint64, deposit uint64) error
	OnTransferResult(msg messenger.TransferResultMessage)
}

type engine struct {
	listings        repository.ListingRepository
	pending         repository.PendingPurchaseRepository
	tokenService    tokens.Service
	elastic         elastic_search.Index
	royaltyCache    *cache.Cache
	platformAccount string
	platformFee     entity.Fraction
}

func NewEngine(
	listings repository.ListingRepository,
	pending repository.PendingPurchaseRepository,
	tokenService tokens.Service,
	elastic elastic_search.Index,
	royaltyCache *cache.Cache,
	platformAccount string,
	platformFee entity.Fraction,
) Engine {
	return engine{listings, pending, tokenService, elastic, royaltyCache, platformAccount, platformFee}
}

func (e engine) BuyToken(buyerId string, tokenId uint64, deposit uint64) error {
	listing, err := e.listings.Get(tokenId)
	if err != nil {
		return entity.NewTokenIdNotFound(tokenId)
	}

	if buyerId == listing.OwnerId {
		return entity.NewBuyOwnTokenNotAllowed()
	}

	if deposit < listing.MinPrice {
		return entity.NewNotEnoughDepositToBuyToken()
	}

	royalty, err := e.royalty(listing.GateId)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("gateId", listing.GateId)).Error("Settlement: Failed to resolve royalty")
		return err
	}

	purchase := entity.PendingPurchase{
		TokenId:   tokenId,
		BuyerId:   buyerId,
		Deposit:   deposit,
		Listing:   listing,
		Royalty:   royalty,
		CreatedAt: time.Now(),
	}

	if err := e.pending.Acquire(purchase); err != nil {
		return entity.NewPurchaseInProgress(tokenId)
	}

	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("buyerId", buyerId),
		zap.Uint64("deposit", deposit),
		zap.Uint64("approvalId", listing.ApprovalId),
	).Info("Settlement: Purchase accepted, transferring token")

	if err := e.tokenService.Transfer(tokenId, buyerId, listing.ApprovalId); err != nil {
		// The transfer never left the marketplace, so nothing settles and
		// nothing refunds; the attempt simply ends here.
		e.pending.Release(tokenId)
		zap.L().With(zap.Error(err), zap.Uint64("tokenId", tokenId)).Error("Settlement: Failed to issue transfer")
		return err
	}

	return nil
}

func (e engine) OnTransferResult(msg messenger.TransferResultMessage) {
	purchase, err := e.pending.Get(msg.TokenId)
	if err != nil {
		// A result with no matching purchase is a contract side anomaly,
		// not something the marketplace can act on.
		zap.L().With(zap.Uint64("tokenId", msg.TokenId)).Warn("Settlement: Transfer result for unknown purchase")
		e.reportAnomaly("unknown_transfer_result", err, map[string]interface{}{"tokenId": msg.TokenId})
		return
	}
	defer e.pending.Release(msg.TokenId)

	if msg.Success {
		e.settle(purchase)
		return
	}

	e.rollback(purchase, msg)
}

// settle runs after ownership has already moved to the buyer. The listing
// is consumed and the deposit fans out; a failed payment sub-call cannot
// undo the sale, so it is recorded as an anomaly and settlement continues.
func (e engine) settle(purchase entity.PendingPurchase) {
	listing := purchase.Listing

	e.listings.Remove(purchase.TokenId)

	payout := fee.Split(purchase.Deposit, listing.MinPrice, e.platformFee, purchase.Royalty)

	e.pay(e.platformAccount, payout.PlatformShare, purchase)
	e.pay(listing.CreatorId, payout.CreatorShare, purchase)
	e.pay(listing.OwnerId, payout.SellerShare, purchase)

	zap.L().With(
		zap.Uint64("tokenId", purchase.TokenId),
		zap.String("buyerId", purchase.BuyerId),
		zap.Uint64("cost", purchase.Deposit),
		zap.Uint64("platformShare", payout.PlatformShare),
		zap.Uint64("creatorShare", payout.CreatorShare),
		zap.Uint64("sellerShare", payout.SellerShare),
	).Info("Settlement: Purchase settled")

	e.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), entity.MarketAction{
		TokenId:   purchase.TokenId,
		GateId:    listing.GateId,
		Action:    entity.SaleAction,
		From:      listing.OwnerId,
		To:        purchase.BuyerId,
		MinPrice:  listing.MinPrice,
		Cost:      purchase.Deposit,
		Fee:       payout.PlatformShare,
		Royalty:   payout.CreatorShare,
		Timestamp: time.Now().UnixNano(),
	}, elastic_search.TokenSold)

	event.EmitEvent(event.TokenSoldEvent, purchase)
}

// rollback refunds the buyer in full. The listing survives unless the
// transfer failed because the seller no longer owns the token, in which
// case the listing is stale and removed.
func (e engine) rollback(purchase entity.PendingPurchase, msg messenger.TransferResultMessage) {
	listing := purchase.Listing

	e.pay(purchase.BuyerId, purchase.Deposit, purchase)

	if msg.OwnerChanged {
		e.listings.Remove(purchase.TokenId)
	}

	zap.L().With(
		zap.Uint64("tokenId", purchase.TokenId),
		zap.String("buyerId", purchase.BuyerId),
		zap.Uint64("deposit", purchase.Deposit),
		zap.Bool("ownerChanged", msg.OwnerChanged),
		zap.String("reason", msg.Reason),
	).Info("Settlement: Purchase rolled back")

	e.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), entity.MarketAction{
		TokenId:   purchase.TokenId,
		GateId:    listing.GateId,
		Action:    entity.RefundAction,
		From:      listing.OwnerId,
		To:        purchase.BuyerId,
		MinPrice:  listing.MinPrice,
		Cost:      purchase.Deposit,
		Timestamp: time.Now().UnixNano(),
	}, elastic_search.PurchaseRolledBack)

	event.EmitEvent(event.PurchaseRolledBackEvent, purchase)
}

// pay issues a single funds transfer. Zero shares are skipped, and a
// failure is reported but never propagated; by this point the purchase has
// a terminal state and the missing payment is an operator problem.
func (e engine) pay(receiverId string, amount uint64, purchase entity.PendingPurchase) {
	if amount == 0 {
		return
	}

	if err := e.tokenService.TransferFunds(receiverId, amount); err != nil {
		zap.L().With(
			zap.Error(err),
			zap.String("receiverId", receiverId),
			zap.Uint64("amount", amount),
			zap.Uint64("tokenId", purchase.TokenId),
		).Error("Settlement: Payment failed")
		e.reportAnomaly("payment_failed", err, map[string]interface{}{
			"tokenId":    purchase.TokenId,
			"receiverId": receiverId,
			"amount":     amount,
		})
	}
}

func (e engine) royalty(gateId string) (entity.Fraction, error) {
	if royalty, exists := e.royaltyCache.Get(gateId); exists {
		return royalty.(entity.Fraction), nil
	}

	collectible, err := e.tokenService.GetCollectible(gateId)
	if err != nil {
		return entity.Fraction{}, err
	}

	// Royalties are immutable, so expiry is purely the operator's choice
	// of ROYALTY_CACHE_TTL; the cache default carries that setting.
	e.royaltyCache.Set(gateId, collectible.Royalty, cache.DefaultExpiration)

	return collectible.Royalty, nil
}

func (e engine) reportAnomaly(name string, err error, extra map[string]interface{}) {
	e.elastic.AddIndexRequest(
		elastic_search.AnomalyIndex.Get(),
		dev.NewError("settlement", name, err, extra),
		elastic_search.PaymentAnomaly,
	)
	event.EmitEvent(event.PaymentAnomalyEvent, extra)
}
