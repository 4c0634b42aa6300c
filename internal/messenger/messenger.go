package messenger

import (
	"fmt"

	"github.com/GateBay/nft-marketplace/internal/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"go.uber.org/zap"
)

type MessageService interface {
	SendMessage(item Item, body []byte) error
	PollMessages(item Item, messages chan *sqs.Message)
	DeleteMessage(item Item, message *sqs.Message) error
	GetQueueSize(item Item) (*int, error)
}

type Messenger struct {
	sqs *sqs.SQS
}

type Item string

var (
	// TransferResult carries the token contract's verdict on an ownership
	// transfer; consuming it is what resumes a suspended settlement.
	TransferResult Item = "transfer.result"
)

func (i Item) queue() string {
	return fmt.Sprintf("%s-%s-%s", config.Get().Network, config.Get().Index, string(i))
}

func NewMessenger() MessageService {
	cfg := config.Get().Aws

	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	}))

	return &Messenger{sqs: sqs.New(sess)}
}

func (m Messenger) SendMessage(item Item, body []byte) error {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.sqs.SendMessage(&sqs.SendMessageInput{
		MessageBody: aws.String(string(body)),
		QueueUrl:    queueUrl,
	})
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to send message")
		return err
	}

	zap.L().With(zap.String("queue", item.queue())).Info("[Queue] Published message")

	return nil
}

func (m Messenger) PollMessages(item Item, messages chan *sqs.Message) {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Fatal("[Queue] Queue not available")
	}

	for {
		output, err := m.sqs.ReceiveMessage(&sqs.ReceiveMessageInput{
			QueueUrl:            queueUrl,
			MaxNumberOfMessages: aws.Int64(10),
			WaitTimeSeconds:     aws.Int64(15),
		})
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to fetch messages")
			continue
		}

		for _, message := range output.Messages {
			messages <- message
		}
	}
}

func (m Messenger) DeleteMessage(item Item, message *sqs.Message) error {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.sqs.DeleteMessage(&sqs.DeleteMessageInput{
		QueueUrl:      queueUrl,
		ReceiptHandle: message.ReceiptHandle,
	})

	return err
}

func (m Messenger) GetQueueSize(item Item) (*int, error) {
	queueUrl, err := m.queueUrl(item)
	if err != nil {
		return nil, err
	}

	attributes, err := m.sqs.GetQueueAttributes(&sqs.GetQueueAttributesInput{
		QueueUrl:       queueUrl,
		AttributeNames: []*string{aws.String(sqs.QueueAttributeNameApproximateNumberOfMessages)},
	})
	if err != nil {
		return nil, err
	}

	size := 0
	if value, ok := attributes.Attributes[sqs.QueueAttributeNameApproximateNumberOfMessages]; ok {
		fmt.Sscanf(*value, "%d", &size)
	}

	return &size, nil
}

func (m Messenger) queueUrl(item Item) (*string, error) {
	if queueUrl := config.Get().Aws.QueueUrl; queueUrl != "" {
		url := fmt.Sprintf("%s/%s", queueUrl, item.queue())
		return &url, nil
	}

	output, err := m.sqs.GetQueueUrl(&sqs.GetQueueUrlInput{QueueName: aws.String(item.queue())})
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to resolve queue")
		return nil, err
	}

	return output.QueueUrl, nil
}
