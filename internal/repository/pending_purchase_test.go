package repository_test

import (
	"testing"

	"github.com/GateBay/nft-marketplace/internal/entity"
	"github.com/GateBay/nft-marketplace/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestPendingPurchaseRepository_AcquireIsExclusive(t *testing.T) {
	repo := repository.NewPendingPurchaseRepository()

	assert.NoError(t, repo.Acquire(entity.PendingPurchase{TokenId: 1, BuyerId: "bob"}))
	assert.Equal(t, repository.ErrPurchaseInProgress, repo.Acquire(entity.PendingPurchase{TokenId: 1, BuyerId: "eve"}))

	// A different token is unaffected
	assert.NoError(t, repo.Acquire(entity.PendingPurchase{TokenId: 2, BuyerId: "eve"}))
}

func TestPendingPurchaseRepository_Get(t *testing.T) {
	repo := repository.NewPendingPurchaseRepository()

	assert.NoError(t, repo.Acquire(entity.PendingPurchase{TokenId: 1, BuyerId: "bob", Deposit: 500}))

	purchase, err := repo.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "bob", purchase.BuyerId)
	assert.Equal(t, uint64(500), purchase.Deposit)

	_, err = repo.Get(2)
	assert.Equal(t, repository.ErrPurchaseNotFound, err)
}

func TestPendingPurchaseRepository_ReleaseAllowsReacquire(t *testing.T) {
	repo := repository.NewPendingPurchaseRepository()

	assert.NoError(t, repo.Acquire(entity.PendingPurchase{TokenId: 1, BuyerId: "bob"}))
	repo.Release(1)

	assert.NoError(t, repo.Acquire(entity.PendingPurchase{TokenId: 1, BuyerId: "eve"}))

	purchase, err := repo.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "eve", purchase.BuyerId)
}

func TestPendingPurchaseRepository_ReleaseUnknownToken(t *testing.T) {
	repo := repository.NewPendingPurchaseRepository()

	repo.Release(99)

	_, err := repo.Get(99)
	assert.Equal(t, repository.ErrPurchaseNotFound, err)
}
