package repository_test

import (
	"testing"

	"github.com/GateBay/nft-marketplace/internal/entity"
	"github.com/GateBay/nft-marketplace/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestListingRepository_InsertAndGet(t *testing.T) {
	repo := repository.NewListingRepository()

	repo.Insert(entity.Listing{TokenId: 1, GateId: "gate-a", OwnerId: "alice", CreatorId: "carol", MinPrice: 500})

	listing, err := repo.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "alice", listing.OwnerId)

	_, err = repo.Get(2)
	assert.Equal(t, repository.ErrListingNotFound, err)
}

func TestListingRepository_InsertReplaces(t *testing.T) {
	repo := repository.NewListingRepository()

	repo.Insert(entity.Listing{TokenId: 1, MinPrice: 500, ApprovalId: 1})
	repo.Insert(entity.Listing{TokenId: 1, MinPrice: 600, ApprovalId: 2})

	listing, err := repo.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, uint64(600), listing.MinPrice)
	assert.Equal(t, uint64(2), listing.ApprovalId)
	assert.Len(t, repo.All(), 1)
}

func TestListingRepository_RemoveIsIdempotent(t *testing.T) {
	repo := repository.NewListingRepository()

	repo.Insert(entity.Listing{TokenId: 1})
	repo.Remove(1)
	repo.Remove(1)

	_, err := repo.Get(1)
	assert.Equal(t, repository.ErrListingNotFound, err)
	assert.Empty(t, repo.All())
}

func TestListingRepository_RemoveClearsEveryView(t *testing.T) {
	repo := repository.NewListingRepository()

	repo.Insert(entity.Listing{TokenId: 1, GateId: "gate-a", OwnerId: "alice", CreatorId: "carol"})
	repo.Remove(1)

	assert.Empty(t, repo.All())
	assert.Empty(t, repo.ByGateId("gate-a"))
	assert.Empty(t, repo.ByOwnerId("alice"))
	assert.Empty(t, repo.ByCreatorId("carol"))
}

func TestListingRepository_Views(t *testing.T) {
	repo := repository.NewListingRepository()

	repo.Insert(entity.Listing{TokenId: 1, GateId: "gate-a", OwnerId: "alice", CreatorId: "carol"})
	repo.Insert(entity.Listing{TokenId: 2, GateId: "gate-a", OwnerId: "bob", CreatorId: "carol"})
	repo.Insert(entity.Listing{TokenId: 3, GateId: "gate-b", OwnerId: "alice", CreatorId: "dave"})

	assert.Len(t, repo.All(), 3)
	assert.Len(t, repo.ByGateId("gate-a"), 2)
	assert.Len(t, repo.ByOwnerId("alice"), 2)
	assert.Len(t, repo.ByCreatorId("carol"), 2)
	assert.Empty(t, repo.ByGateId("gate-c"))
}

func TestListingRepository_AllPreservesInsertionOrder(t *testing.T) {
	repo := repository.NewListingRepository()

	repo.Insert(entity.Listing{TokenId: 3})
	repo.Insert(entity.Listing{TokenId: 1})
	repo.Insert(entity.Listing{TokenId: 2})

	all := repo.All()
	assert.Equal(t, uint64(3), all[0].TokenId)
	assert.Equal(t, uint64(1), all[1].TokenId)
	assert.Equal(t, uint64(2), all[2].TokenId)
}
