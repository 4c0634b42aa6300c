package messenger

// TransferResultMessage is the body published by the token contract's
// gateway once an ownership transfer has been accepted or rejected.
type TransferResultMessage struct {
	TokenId uint64 `json:"token_id"`
	Success bool   `json:"success"`
	// OwnerChanged signals that the transfer failed because the token's
	// owner is no longer the listed seller, i.e. the listing is stale.
	OwnerChanged bool   `json:"owner_changed"`
	Reason       string `json:"reason,omitempty"`
}
