package entity

import (
	"crypto/md5"
	"fmt"
)

// MarketAction is the history document indexed for every observable
// marketplace state change. Reporting only, never authoritative.
type MarketAction struct {
	TokenId   uint64     `json:"tokenId"`
	GateId    string     `json:"gateId"`
	Action    ActionType `json:"action"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	MinPrice  uint64     `json:"minPrice"`
	Cost      uint64     `json:"cost"`
	Fee       uint64     `json:"fee"`
	Royalty   uint64     `json:"royalty"`
	Timestamp int64      `json:"timestamp"`
}

type ActionType string

const (
	ListedAction   ActionType = "listed"
	DelistedAction ActionType = "delisted"
	SaleAction     ActionType = "sale"
	RefundAction   ActionType = "refund"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.TokenId, string(a.Action), a.Timestamp)
}

func CreateMarketActionSlug(tokenId uint64, action string, timestamp int64) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%s-%d", tokenId, action, timestamp))
	return fmt.Sprintf("%x", md5.Sum(data))
}
