package entity

import "fmt"

type ErrorKind string

const (
	BuyOwnTokenNotAllowed      ErrorKind = "BuyOwnTokenNotAllowed"
	TokenIdNotFound            ErrorKind = "TokenIdNotFound"
	NotEnoughDepositToBuyToken ErrorKind = "NotEnoughDepositToBuyToken"
	RevokeNotAllowed           ErrorKind = "RevokeNotAllowed"
	ApproveNotAllowed          ErrorKind = "ApproveNotAllowed"
	PurchaseInProgress         ErrorKind = "PurchaseInProgress"
	MsgFormatMinPriceMissing   ErrorKind = "MsgFormatMinPriceMissing"
)

// Error is the structured payload every marketplace entrypoint fails with:
// a kind tag, context fields specific to that kind, and a readable message.
// The shape is preserved as-is at the API boundary.
type Error struct {
	Err     ErrorKind `json:"err"`
	TokenId *uint64   `json:"token_id,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Msg     string    `json:"msg"`
}

func (e Error) Error() string {
	return e.Msg
}

func NewBuyOwnTokenNotAllowed() Error {
	return Error{Err: BuyOwnTokenNotAllowed, Msg: "Buyer cannot buy own token"}
}

func NewTokenIdNotFound(tokenId uint64) Error {
	return Error{
		Err:     TokenIdNotFound,
		TokenId: &tokenId,
		Msg:     fmt.Sprintf("Token ID `%d` was not found", tokenId),
	}
}

func NewNotEnoughDepositToBuyToken() Error {
	return Error{Err: NotEnoughDepositToBuyToken, Msg: "Not enough deposit to cover token minimum price"}
}

func NewRevokeNotAllowed() Error {
	return Error{Err: RevokeNotAllowed, Msg: "Revoke is only accepted from the token contract"}
}

func NewApproveNotAllowed() Error {
	return Error{Err: ApproveNotAllowed, Msg: "Approve is only accepted from the token contract"}
}

func NewPurchaseInProgress(tokenId uint64) Error {
	return Error{
		Err:     PurchaseInProgress,
		TokenId: &tokenId,
		Msg:     fmt.Sprintf("A purchase of token `%d` is already in flight", tokenId),
	}
}

func NewMsgFormatMinPriceMissing(reason string) Error {
	return Error{
		Err:    MsgFormatMinPriceMissing,
		Reason: reason,
		Msg:    fmt.Sprintf("Could not find min_price in msg: %s", reason),
	}
}

// IsKind reports whether err is a marketplace Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	if e, ok := err.(Error); ok {
		return e.Err == kind
	}

	return false
}
