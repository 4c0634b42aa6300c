package entity

import (
	"fmt"

	"github.com/gosimple/slug"
)

// Listing represents a token being sold on this marketplace.
// A Listing exists for a token if and only if the token is currently
// approved for sale here and has not been sold or had its approval revoked.
type Listing struct {
	TokenId uint64 `json:"tokenId"`
	// GateId is the collectible this token belongs to.
	GateId    string `json:"gateId"`
	OwnerId   string `json:"ownerId"`
	CreatorId string `json:"creatorId"`
	// MinPrice is expressed in the smallest currency unit.
	MinPrice uint64 `json:"minPrice"`
	// ApprovalId is the approval nonce issued by the token contract.
	// It is sent back with the transfer so stale approvals are rejected.
	ApprovalId uint64 `json:"approvalId"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.TokenId)
}

func CreateListingSlug(tokenId uint64) string {
	return slug.Make(fmt.Sprintf("listing-%d", tokenId))
}

// ApproveMsg is the payload attached to an on_approve callback.
type ApproveMsg struct {
	MinPrice  uint64 `json:"min_price"`
	GateId    string `json:"gate_id"`
	CreatorId string `json:"creator_id"`
}

// Collectible holds the token contract's view of a gate. The royalty is
// fixed at collectible creation and never changes afterwards.
type Collectible struct {
	GateId    string   `json:"gate_id"`
	CreatorId string   `json:"creator_id"`
	Royalty   Fraction `json:"royalty"`
}
