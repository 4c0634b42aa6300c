package repository

import (
	"errors"
	"sync"

	"github.com/GateBay/nft-marketplace/internal/entity"
)

var (
	ErrPurchaseInProgress = errors.New("purchase already in progress")
	ErrPurchaseNotFound   = errors.New("pending purchase not found")
)

// PendingPurchaseRepository is the per-token in-flight marker. Acquire
// fails while a purchase for the same token is unresolved; Release must be
// called on every settlement exit path so the marker never leaks.
type PendingPurchaseRepository interface {
	Acquire(purchase entity.PendingPurchase) error
	Get(tokenId uint64) (entity.PendingPurchase, error)
	Release(tokenId uint64)
}

type pendingPurchaseRepository struct {
	mu      sync.Mutex
	pending map[uint64]entity.PendingPurchase
}

func NewPendingPurchaseRepository() PendingPurchaseRepository {
	return &pendingPurchaseRepository{pending: make(map[uint64]entity.PendingPurchase)}
}

func (r *pendingPurchaseRepository) Acquire(purchase entity.PendingPurchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pending[purchase.TokenId]; exists {
		return ErrPurchaseInProgress
	}

	r.pending[purchase.TokenId] = purchase

	return nil
}

func (r *pendingPurchaseRepository) Get(tokenId uint64) (entity.PendingPurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purchase, exists := r.pending[tokenId]
	if !exists {
		return entity.PendingPurchase{}, ErrPurchaseNotFound
	}

	return purchase, nil
}

func (r *pendingPurchaseRepository) Release(tokenId uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pending, tokenId)
}
