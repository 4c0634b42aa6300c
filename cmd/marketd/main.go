package main

import (
	"fmt"
	"net/http"

	"github.com/GateBay/nft-marketplace/internal/config"
	"github.com/GateBay/nft-marketplace/internal/config/di"
	"github.com/GateBay/nft-marketplace/internal/daemon"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var container *di.Container

// The listing store and pending purchase markers live in process memory,
// so the api and the transfer result consumer must share one process.
func main() {
	config.Init("marketd")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	go health()

	go daemon.NewDaemon(
		container.GetElastic(),
		container.GetMessenger(),
		container.GetSettlementEngine(),
	).Execute()

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Market Started")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, container.GetApi().Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start market api")
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health server")
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
