package repository

import (
	"errors"
	"sync"

	"github.com/GateBay/nft-marketplace/internal/entity"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

type ListingRepository interface {
	Insert(listing entity.Listing)
	Remove(tokenId uint64)
	Get(tokenId uint64) (entity.Listing, error)
	All() []entity.Listing
	ByGateId(gateId string) []entity.Listing
	ByOwnerId(ownerId string) []entity.Listing
	ByCreatorId(creatorId string) []entity.Listing
}

// listingRepository is the authoritative for-sale store. The keyed views
// are filters over the primary order computed under the same lock, so a
// removal is visible in every view in the same instant.
type listingRepository struct {
	mu       sync.RWMutex
	listings map[uint64]entity.Listing
	order    []uint64
}

func NewListingRepository() ListingRepository {
	return &listingRepository{
		listings: make(map[uint64]entity.Listing),
		order:    make([]uint64, 0),
	}
}

// Insert replaces any existing listing for the same token. The latest
// approval always wins and a token is never listed twice.
func (r *listingRepository) Insert(listing entity.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.listings[listing.TokenId]; !exists {
		r.order = append(r.order, listing.TokenId)
	}
	r.listings[listing.TokenId] = listing
}

// Remove is idempotent. Removing an absent token is not an error.
func (r *listingRepository) Remove(tokenId uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.listings[tokenId]; !exists {
		return
	}

	delete(r.listings, tokenId)
	for i, id := range r.order {
		if id == tokenId {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *listingRepository) Get(tokenId uint64) (entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, exists := r.listings[tokenId]
	if !exists {
		return entity.Listing{}, ErrListingNotFound
	}

	return listing, nil
}

func (r *listingRepository) All() []entity.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(l entity.Listing) bool { return true })
}

func (r *listingRepository) ByGateId(gateId string) []entity.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(l entity.Listing) bool { return l.GateId == gateId })
}

func (r *listingRepository) ByOwnerId(ownerId string) []entity.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(l entity.Listing) bool { return l.OwnerId == ownerId })
}

func (r *listingRepository) ByCreatorId(creatorId string) []entity.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(l entity.Listing) bool { return l.CreatorId == creatorId })
}

// filter walks the insertion order. Callers must hold the lock.
func (r *listingRepository) filter(match func(entity.Listing) bool) []entity.Listing {
	result := make([]entity.Listing, 0)
	for _, tokenId := range r.order {
		if listing := r.listings[tokenId]; match(listing) {
			result = append(result, listing)
		}
	}

	return result
}
