package daemon

import (
	"encoding/json"
	"time"

	"github.com/GateBay/nft-marketplace/internal/elastic_search"
	"github.com/GateBay/nft-marketplace/internal/messenger"
	"github.com/GateBay/nft-marketplace/internal/settlement"
	"github.com/aws/aws-sdk-go/service/sqs"
	"go.uber.org/zap"
)

// Daemon ties the long running parts of the marketplace together: it
// consumes transfer results from the queue to resume suspended purchases
// and periodically flushes the buffered market history to ES.
type Daemon struct {
	elastic        elastic_search.Index
	messageService messenger.MessageService
	engine         settlement.Engine
}

func NewDaemon(
	elastic elastic_search.Index,
	messageService messenger.MessageService,
	engine settlement.Engine,
) *Daemon {
	return &Daemon{elastic, messageService, engine}
}

func (d *Daemon) Execute() {
	d.elastic.InstallMappings()

	go d.pollTransferResults()
	go d.persist()

	zap.L().Info("Daemon started")

	select {}
}

func (d *Daemon) pollTransferResults() {
	zap.L().Info("Subscribing to transfer results")
	messages := make(chan *sqs.Message, 10)
	go d.messageService.PollMessages(messenger.TransferResult, messages)

	for message := range messages {
		var data messenger.TransferResultMessage
		if err := json.Unmarshal([]byte(*message.Body), &data); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to read transfer result")
			continue
		}
		zap.L().With(
			zap.Uint64("tokenId", data.TokenId),
			zap.Bool("success", data.Success),
		).Info("Transfer result received")

		d.engine.OnTransferResult(data)

		if err := d.messageService.DeleteMessage(messenger.TransferResult, message); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to delete message")
		}

		d.elastic.Persist()
	}
}

func (d *Daemon) persist() {
	for {
		time.Sleep(5 * time.Second)
		d.elastic.BatchPersist()
	}
}
