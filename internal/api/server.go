package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/GateBay/nft-marketplace/internal/entity"
	"github.com/GateBay/nft-marketplace/internal/gateway"
	"github.com/GateBay/nft-marketplace/internal/repository"
	"github.com/GateBay/nft-marketplace/internal/settlement"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	listings      repository.ListingRepository
	marketActions repository.MarketActionRepository
	approval      gateway.ApprovalGateway
	engine        settlement.Engine
}

func NewServer(
	listings repository.ListingRepository,
	marketActions repository.MarketActionRepository,
	approval gateway.ApprovalGateway,
	engine settlement.Engine,
) Server {
	return Server{listings, marketActions, approval, engine}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/tokens", s.handleGetTokens).Methods("GET")
	r.HandleFunc("/tokens/gate/{gateId}", s.handleGetTokensByGate).Methods("GET")
	r.HandleFunc("/tokens/owner/{ownerId}", s.handleGetTokensByOwner).Methods("GET")
	r.HandleFunc("/tokens/creator/{creatorId}", s.handleGetTokensByCreator).Methods("GET")
	r.HandleFunc("/tokens/{tokenId}/actions", s.handleGetTokenActions).Methods("GET")
	r.HandleFunc("/tokens/{tokenId}/buy", s.handleBuyToken).Methods("POST")
	r.HandleFunc("/tokens/{tokenId}/approve", s.handleRequestApproval).Methods("POST")
	r.HandleFunc("/callback/approve", s.handleOnApprove).Methods("POST")
	r.HandleFunc("/callback/revoke", s.handleOnRevoke).Methods("POST")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleGetTokens(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, s.listings.All())
}

func (s Server) handleGetTokensByGate(w http.ResponseWriter, r *http.Request) {
	gateId := mux.Vars(r)["gateId"]
	writeJson(w, http.StatusOK, s.listings.ByGateId(gateId))
}

func (s Server) handleGetTokensByOwner(w http.ResponseWriter, r *http.Request) {
	ownerId := mux.Vars(r)["ownerId"]
	writeJson(w, http.StatusOK, s.listings.ByOwnerId(ownerId))
}

func (s Server) handleGetTokensByCreator(w http.ResponseWriter, r *http.Request) {
	creatorId := mux.Vars(r)["creatorId"]
	writeJson(w, http.StatusOK, s.listings.ByCreatorId(creatorId))
}

func (s Server) handleGetTokenActions(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		http.Error(w, "Invalid token id", http.StatusBadRequest)
		return
	}

	size, page := getPagination(r)

	actions, total, err := s.marketActions.GetActionsByTokenId(tokenId, size, page)
	if err != nil {
		zap.L().With(zap.Error(err), zap.Uint64("tokenId", tokenId)).Error("Failed to get token actions")
		http.Error(w, "Failed to get token actions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-Total-Count", fmt.Sprintf("%d", total))
	writeJson(w, http.StatusOK, actions)
}

type buyTokenRequest struct {
	BuyerId string `json:"buyer_id"`
	Deposit uint64 `json:"deposit"`
}

func (s Server) handleBuyToken(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		http.Error(w, "Invalid token id", http.StatusBadRequest)
		return
	}

	var req buyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BuyerId == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.engine.BuyToken(req.BuyerId, tokenId, req.Deposit); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

type requestApprovalRequest struct {
	SellerId string `json:"seller_id"`
	MinPrice uint64 `json:"min_price"`
}

func (s Server) handleRequestApproval(w http.ResponseWriter, r *http.Request) {
	tokenId, err := getTokenId(r)
	if err != nil {
		http.Error(w, "Invalid token id", http.StatusBadRequest)
		return
	}

	var req requestApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SellerId == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.approval.RequestApproval(req.SellerId, tokenId, req.MinPrice); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

type approveCallbackRequest struct {
	TokenId    uint64            `json:"token_id"`
	OwnerId    string            `json:"owner_id"`
	ApprovalId uint64            `json:"approval_id"`
	Msg        entity.ApproveMsg `json:"msg"`
}

func (s Server) handleOnApprove(w http.ResponseWriter, r *http.Request) {
	var req approveCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	callerId := r.Header.Get("X-Caller-Account")

	if err := s.approval.OnApprove(callerId, req.TokenId, req.OwnerId, req.ApprovalId, req.Msg); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type revokeCallbackRequest struct {
	TokenId uint64 `json:"token_id"`
}

func (s Server) handleOnRevoke(w http.ResponseWriter, r *http.Request) {
	var req revokeCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	callerId := r.Header.Get("X-Caller-Account")

	if err := s.approval.OnRevoke(callerId, req.TokenId); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func getTokenId(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["tokenId"], 10, 64)
}

func getPagination(r *http.Request) (size, page int) {
	size, page = 20, 1
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s > 0 {
		size = s
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	return size, page
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a marketplace error to its status code and writes the
// structured payload unchanged. Anything else is an internal failure.
func writeError(w http.ResponseWriter, err error) {
	marketErr, ok := err.(entity.Error)
	if !ok {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJson(w, statusFor(marketErr.Err), marketErr)
}

func statusFor(kind entity.ErrorKind) int {
	switch kind {
	case entity.TokenIdNotFound:
		return http.StatusNotFound
	case entity.BuyOwnTokenNotAllowed, entity.RevokeNotAllowed, entity.ApproveNotAllowed:
		return http.StatusForbidden
	case entity.NotEnoughDepositToBuyToken:
		return http.StatusPaymentRequired
	case entity.PurchaseInProgress:
		return http.StatusConflict
	case entity.MsgFormatMinPriceMissing:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
