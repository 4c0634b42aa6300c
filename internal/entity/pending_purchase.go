package entity

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

// PendingPurchase marks a purchase that has been accepted but whose
// ownership transfer has not yet resolved. At most one exists per token,
// which is what prevents double settlement of the same token.
type PendingPurchase struct {
	TokenId uint64 `json:"tokenId"`
	BuyerId string `json:"buyerId"`
	Deposit uint64 `json:"deposit"`
	// Listing is a snapshot taken before the transfer was issued, so the
	// settlement continuation never depends on the live store.
	Listing Listing `json:"listing"`
	// Royalty is resolved during entry validation and carried here for the
	// same reason.
	Royalty   Fraction  `json:"royalty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p PendingPurchase) Slug() string {
	return slug.Make(fmt.Sprintf("pending-%d", p.TokenId))
}
