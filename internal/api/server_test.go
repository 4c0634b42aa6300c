package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GateBay/nft-marketplace/internal/api"
	"github.com/GateBay/nft-marketplace/internal/entity"
	"github.com/GateBay/nft-marketplace/internal/messenger"
	"github.com/GateBay/nft-marketplace/internal/repository"
	"github.com/stretchr/testify/assert"
)

type buyCall struct {
	buyerId string
	tokenId uint64
	deposit uint64
}

type fakeEngine struct {
	calls []buyCall
	err   error
}

func (f *fakeEngine) BuyToken(buyerId string, tokenId uint64, deposit uint64) error {
	f.calls = append(f.calls, buyCall{buyerId, tokenId, deposit})
	return f.err
}

func (f *fakeEngine) OnTransferResult(msg messenger.TransferResultMessage) {}

type fakeGateway struct {
	approveCaller string
	revokeCaller  string
	relayed       bool
	err           error
}

func (f *fakeGateway) OnApprove(callerId string, tokenId uint64, ownerId string, approvalId uint64, msg entity.ApproveMsg) error {
	f.approveCaller = callerId
	return f.err
}

func (f *fakeGateway) OnRevoke(callerId string, tokenId uint64) error {
	f.revokeCaller = callerId
	return f.err
}

func (f *fakeGateway) RequestApproval(sellerId string, tokenId uint64, minPrice uint64) error {
	f.relayed = true
	return f.err
}

type fakeMarketActions struct {
	actions []entity.MarketAction
}

func (f *fakeMarketActions) GetActionsByTokenId(tokenId uint64, size, page int) ([]entity.MarketAction, int64, error) {
	return f.actions, int64(len(f.actions)), nil
}

func (f *fakeMarketActions) GetBestSale(tokenId uint64) (*entity.MarketAction, error) {
	return nil, nil
}

type fixture struct {
	listings repository.ListingRepository
	engine   *fakeEngine
	gateway  *fakeGateway
	server   *httptest.Server
}

func newFixture() fixture {
	f := fixture{
		listings: repository.NewListingRepository(),
		engine:   &fakeEngine{},
		gateway:  &fakeGateway{},
	}
	f.server = httptest.NewServer(api.NewServer(f.listings, &fakeMarketActions{}, f.gateway, f.engine).Router())

	return f
}

func (f fixture) post(t *testing.T, path string, body interface{}, headers map[string]string) *http.Response {
	encoded, err := json.Marshal(body)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", f.server.URL+path, bytes.NewReader(encoded))
	assert.NoError(t, err)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)

	return resp
}

func TestGetTokens(t *testing.T) {
	f := newFixture()
	defer f.server.Close()

	f.listings.Insert(entity.Listing{TokenId: 1, GateId: "gate-a", OwnerId: "alice", MinPrice: 500})
	f.listings.Insert(entity.Listing{TokenId: 2, GateId: "gate-b", OwnerId: "bob", MinPrice: 700})

	resp, err := http.Get(f.server.URL + "/tokens")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listings []entity.Listing
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&listings))
	assert.Len(t, listings, 2)
}

func TestGetTokensByView(t *testing.T) {
	f := newFixture()
	defer f.server.Close()

	f.listings.Insert(entity.Listing{TokenId: 1, GateId: "gate-a", OwnerId: "alice", CreatorId: "carol"})
	f.listings.Insert(entity.Listing{TokenId: 2, GateId: "gate-b", OwnerId: "bob", CreatorId: "carol"})

	for path, want := range map[string]int{
		"/tokens/gate/gate-a":    1,
		"/tokens/owner/bob":      1,
		"/tokens/creator/carol":  2,
		"/tokens/creator/nobody": 0,
	} {
		resp, err := http.Get(f.server.URL + path)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var listings []entity.Listing
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&listings))
		assert.Len(t, listings, want, path)
	}
}

func TestBuyToken(t *testing.T) {
	f := newFixture()
	defer f.server.Close()

	resp := f.post(t, "/tokens/1/buy", map[string]interface{}{"buyer_id": "bob", "deposit": 500}, nil)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, []buyCall{{"bob", 1, 500}}, f.engine.calls)
}

func TestBuyToken_ErrorStatus(t *testing.T) {
	for _, tc := range []struct {
		err    entity.Error
		status int
	}{
		{entity.NewTokenIdNotFound(1), http.StatusNotFound},
		{entity.NewBuyOwnTokenNotAllowed(), http.StatusForbidden},
		{entity.NewNotEnoughDepositToBuyToken(), http.StatusPaymentRequired},
		{entity.NewPurchaseInProgress(1), http.StatusConflict},
	} {
		f := newFixture()
		f.engine.err = tc.err

		resp := f.post(t, "/tokens/1/buy", map[string]interface{}{"buyer_id": "bob", "deposit": 500}, nil)
		assert.Equal(t, tc.status, resp.StatusCode, string(tc.err.Err))

		var payload entity.Error
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, tc.err.Err, payload.Err)
		assert.Equal(t, tc.err.Msg, payload.Msg)

		f.server.Close()
	}
}

func TestBuyToken_InvalidRequests(t *testing.T) {
	f := newFixture()
	defer f.server.Close()

	resp := f.post(t, "/tokens/not-a-number/buy", map[string]interface{}{"buyer_id": "bob"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.post(t, "/tokens/1/buy", map[string]interface{}{"deposit": 500}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Empty(t, f.engine.calls)
}

func TestRequestApproval(t *testing.T) {
	f := newFixture()
	defer f.server.Close()

	resp := f.post(t, "/tokens/1/approve", map[string]interface{}{"seller_id": "alice", "min_price": 500}, nil)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.True(t, f.gateway.relayed)
}

func TestApproveCallback(t *testing.T) {
	f := newFixture()
	defer f.server.Close()

	resp := f.post(t, "/callback/approve", map[string]interface{}{
		"token_id":    1,
		"owner_id":    "alice",
		"approval_id": 7,
		"msg":         map[string]interface{}{"min_price": 500, "gate_id": "gate-a"},
	}, map[string]string{"X-Caller-Account": "tokens.gatebay"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "tokens.gatebay", f.gateway.approveCaller)
}

func TestApproveCallback_Untrusted(t *testing.T) {
	f := newFixture()
	defer f.server.Close()
	f.gateway.err = entity.NewApproveNotAllowed()

	resp := f.post(t, "/callback/approve", map[string]interface{}{"token_id": 1}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRevokeCallback(t *testing.T) {
	f := newFixture()
	defer f.server.Close()

	resp := f.post(t, "/callback/revoke", map[string]interface{}{"token_id": 1},
		map[string]string{"X-Caller-Account": "tokens.gatebay"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "tokens.gatebay", f.gateway.revokeCaller)
}

func TestRevokeCallback_Untrusted(t *testing.T) {
	f := newFixture()
	defer f.server.Close()
	f.gateway.err = entity.NewRevokeNotAllowed()

	resp := f.post(t, "/callback/revoke", map[string]interface{}{"token_id": 1}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetTokenActions(t *testing.T) {
	f := newFixture()
	defer f.server.Close()

	resp, err := http.Get(f.server.URL + "/tokens/1/actions")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-Total-Count"))
}

func TestHealth(t *testing.T) {
	f := newFixture()
	defer f.server.Close()

	resp, err := http.Get(f.server.URL + "/health")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
