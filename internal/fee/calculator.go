package fee

import (
	"github.com/GateBay/nft-marketplace/internal/entity"
)

// Payout is the three-way split of a settled purchase deposit.
type Payout struct {
	PlatformShare uint64
	CreatorShare  uint64
	SellerShare   uint64
}

// Share returns floor(price * fraction), in integer arithmetic.
func Share(price uint64, fraction entity.Fraction) uint64 {
	return fraction.Mult(price)
}

// Split distributes the full deposit of a sale. The platform and creator
// shares are floored from the listing's min price; the seller receives
// whatever remains, so the flooring dust and any deposit above the min
// price accrue to the seller and the three shares always sum to deposit.
// Should the platform fee and royalty together exceed the whole, the
// creator share is capped at what the deposit still covers and the seller
// receives nothing; the sum never exceeds the deposit.
func Split(deposit, minPrice uint64, platformFee, royalty entity.Fraction) Payout {
	platformShare := Share(minPrice, platformFee)
	creatorShare := Share(minPrice, royalty)

	if creatorShare > deposit-platformShare {
		creatorShare = deposit - platformShare
	}

	return Payout{
		PlatformShare: platformShare,
		CreatorShare:  creatorShare,
		SellerShare:   deposit - platformShare - creatorShare,
	}
}
