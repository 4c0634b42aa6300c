package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/GateBay/nft-marketplace/internal/config"
	"github.com/GateBay/nft-marketplace/internal/config/di"
	"github.com/GateBay/nft-marketplace/internal/messenger"
	"github.com/GateBay/nft-marketplace/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container        *di.Container
	marketActionRepo repository.MarketActionRepository
	messengerService messenger.MessageService
)

func main() {
	config.Init("cli")

	container, _ = di.NewContainer()
	marketActionRepo = container.GetMarketActionRepo()
	messengerService = container.GetMessenger()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "queueSize",
				Usage:  "Report the number of unconsumed transfer results",
				Action: queueSize,
			},
			{
				Name:   "history",
				Usage:  "Print the market action history for a token",
				Action: history,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "token", Usage: "Token id", Required: true},
					&cli.IntFlag{Name: "size", Value: 20, Usage: "Page size"},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
				},
			},
			{
				Name:   "bestSale",
				Usage:  "Print the highest sale recorded for a token",
				Action: bestSale,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "token", Usage: "Token id", Required: true},
				},
			},
			{
				Name:   "transferResult",
				Usage:  "Inject a transfer result message (testing environments only)",
				Action: transferResult,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "token", Usage: "Token id", Required: true},
					&cli.BoolFlag{Name: "success", Usage: "Transfer succeeded"},
					&cli.BoolFlag{Name: "ownerChanged", Usage: "Transfer failed because the owner changed"},
					&cli.StringFlag{Name: "reason", Value: "", Usage: "Failure reason"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func queueSize(c *cli.Context) error {
	size, err := messengerService.GetQueueSize(messenger.TransferResult)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get the queue size")
		return nil
	}

	fmt.Printf("%d\n", *size)

	return nil
}

func history(c *cli.Context) error {
	actions, total, err := marketActionRepo.GetActionsByTokenId(c.Uint64("token"), c.Int("size"), c.Int("page"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Could not get token history")
		return nil
	}

	fmt.Printf("%d actions\n", total)
	for _, action := range actions {
		body, _ := json.Marshal(action)
		fmt.Println(string(body))
	}

	return nil
}

func bestSale(c *cli.Context) error {
	sale, err := marketActionRepo.GetBestSale(c.Uint64("token"))
	if err != nil {
		zap.L().With(zap.Error(err)).Error("No sale found for token")
		return nil
	}

	body, _ := json.Marshal(sale)
	fmt.Println(string(body))

	return nil
}

func transferResult(c *cli.Context) error {
	body, _ := json.Marshal(messenger.TransferResultMessage{
		TokenId:      c.Uint64("token"),
		Success:      c.Bool("success"),
		OwnerChanged: c.Bool("ownerChanged"),
		Reason:       c.String("reason"),
	})

	if err := messengerService.SendMessage(messenger.TransferResult, body); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to queue transfer result")
		return nil
	}

	zap.L().With(zap.Uint64("tokenId", c.Uint64("token"))).Info("Transfer result queued")

	return nil
}
