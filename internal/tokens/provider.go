package tokens

import (
	"encoding/json"

	"github.com/GateBay/nft-marketplace/internal/entity"
)

type Provider struct {
	rpcClient *rpcClient
}

func NewProvider(rpcClient *rpcClient) *Provider {
	return &Provider{rpcClient: rpcClient}
}

// Transfer asks the token contract to move ownership of tokenId to
// receiverId under the given approval nonce. The call only acknowledges
// receipt of the request; the outcome arrives later on the result queue.
func (p *Provider) Transfer(tokenId uint64, receiverId string, approvalId uint64) error {
	_, err := p.call("nft_transfer", map[string]interface{}{
		"token_id":    tokenId,
		"receiver_id": receiverId,
		"approval_id": approvalId,
	})

	return err
}

// TransferFunds moves currency from the marketplace account to receiverId.
func (p *Provider) TransferFunds(receiverId string, amount uint64) error {
	_, err := p.call("transfer_funds", map[string]interface{}{
		"receiver_id": receiverId,
		"amount":      amount,
	})

	return err
}

// RequestApproval relays a seller's intent to list tokenId. The token
// contract verifies ownership and calls back on_approve if it agrees.
func (p *Provider) RequestApproval(sellerId string, tokenId uint64, minPrice uint64) error {
	_, err := p.call("nft_approve", map[string]interface{}{
		"token_id": tokenId,
		"owner_id": sellerId,
		"msg":      entity.ApproveMsg{MinPrice: minPrice},
	})

	return err
}

func (p *Provider) GetCollectible(gateId string) (*entity.Collectible, error) {
	response, err := p.call("get_collectible", map[string]interface{}{
		"gate_id": gateId,
	})
	if err != nil {
		return nil, err
	}

	jsonString, err := response.ResultAsJson()
	if err != nil {
		return nil, err
	}

	var collectible entity.Collectible
	if err := json.Unmarshal(jsonString, &collectible); err != nil {
		return nil, err
	}

	return &collectible, nil
}

func (p *Provider) call(method string, params interface{}) (*rpcResponse, error) {
	response, err := p.rpcClient.call(method, params)
	if err != nil {
		return nil, err
	}

	if response.Error != nil {
		return nil, *response.Error
	}

	return response, nil
}
