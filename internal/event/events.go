package event

type Type string

const (
	TokenListedEvent        Type = "TokenListedEvent"
	TokenDelistedEvent      Type = "TokenDelistedEvent"
	TokenSoldEvent          Type = "TokenSoldEvent"
	PurchaseRolledBackEvent Type = "PurchaseRolledBackEvent"
	PaymentAnomalyEvent     Type = "PaymentAnomalyEvent"
)
