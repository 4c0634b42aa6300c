package tokens

import (
	"github.com/GateBay/nft-marketplace/internal/entity"
	"go.uber.org/zap"
)

// Service is the outbound surface of the token-issuing contract.
type Service interface {
	Transfer(tokenId uint64, receiverId string, approvalId uint64) error
	TransferFunds(receiverId string, amount uint64) error
	RequestApproval(sellerId string, tokenId uint64, minPrice uint64) error
	GetCollectible(gateId string) (*entity.Collectible, error)
}

type service struct {
	provider *Provider
}

func NewTokenService(provider *Provider) Service {
	return service{provider}
}

func (s service) Transfer(tokenId uint64, receiverId string, approvalId uint64) error {
	zap.L().With(
		zap.Uint64("tokenId", tokenId),
		zap.String("receiverId", receiverId),
		zap.Uint64("approvalId", approvalId),
	).Info("TokenContract: Transfer requested")

	return s.provider.Transfer(tokenId, receiverId, approvalId)
}

func (s service) TransferFunds(receiverId string, amount uint64) error {
	zap.L().With(
		zap.String("receiverId", receiverId),
		zap.Uint64("amount", amount),
	).Info("TokenContract: Funds transfer")

	return s.provider.TransferFunds(receiverId, amount)
}

func (s service) RequestApproval(sellerId string, tokenId uint64, minPrice uint64) error {
	return s.provider.RequestApproval(sellerId, tokenId, minPrice)
}

func (s service) GetCollectible(gateId string) (*entity.Collectible, error) {
	return s.provider.GetCollectible(gateId)
}
