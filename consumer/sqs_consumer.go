package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notification-service/models"
	"notification-service/services"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

var errUnknownEventType = errors.New("unknown event type")

type SQSConsumer struct {
	client   *sqs.Client
	queueURL string
	service  services.EventService
	logger   *zap.Logger
}

func NewSQSConsumer(ctx context.Context, queueURL string, svc services.EventService, logger *zap.Logger) (*SQSConsumer, error) {
	if queueURL == "" {
		return nil, fmt.Errorf("SQS_QUEUE_URL not set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SQSConsumer{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
		service:  svc,
		logger:   logger,
	}, nil
}

func (c *SQSConsumer) Start(ctx context.Context) {
	c.logger.Info("sqs consumer started", zap.String("queue", c.queueURL))
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("sqs consumer shutting down")
			return
		default:
			c.poll(ctx)
		}
	}
}

func (c *SQSConsumer) poll(ctx context.Context) {
	output, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.queueURL),
		MaxNumberOfMessages: 10,
		WaitTimeSeconds:     5, // long polling
	})
	if err != nil {
		c.logger.Error("sqs receive error", zap.Error(err))
		time.Sleep(5 * time.Second)
		return
	}

	for _, msg := range output.Messages {
		c.processMessage(ctx, msg.Body, msg.ReceiptHandle)
	}
}

// snsEnvelope unwraps the SNS → SQS message wrapper.
type snsEnvelope struct {
	Message string `json:"Message"`
}

func (c *SQSConsumer) processMessage(ctx context.Context, body *string, receiptHandle *string) {
	if body == nil || *body == "" {
		c.logger.Error("received empty sqs message body")
		return
	}
	if receiptHandle == nil || *receiptHandle == "" {
		c.logger.Error("received empty sqs receipt handle")
		return
	}

	var envelope snsEnvelope
	if err := json.Unmarshal([]byte(*body), &envelope); err != nil {
		c.logger.Error("failed to unmarshal sns envelope", zap.Error(err))
		c.deleteMessage(ctx, receiptHandle) // unparseable, delete to avoid infinite loop
		return
	}

	var payload models.EventPayload
	if err := json.Unmarshal([]byte(envelope.Message), &payload); err != nil {
		c.logger.Error("failed to unmarshal event payload", zap.Error(err))
		c.deleteMessage(ctx, receiptHandle)
		return
	}

	if err := Dispatch(ctx, c.service, payload); err != nil {
		c.logger.Error("failed to process event",
			zap.String("event_type", payload.EventType),
			zap.Error(err),
		)
		if errors.Is(err, errUnknownEventType) {
			c.deleteMessage(ctx, receiptHandle) // redelivery cannot help
		}
		// Otherwise leave the message; SQS redelivers after the
		// visibility timeout.
		return
	}

	c.deleteMessage(ctx, receiptHandle)
}

func (c *SQSConsumer) deleteMessage(ctx context.Context, receiptHandle *string) {
	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: receiptHandle,
	})
	if err != nil {
		c.logger.Error("failed to delete sqs message", zap.Error(err))
	}
}

// Dispatch routes one decoded event payload to the matching orchestrator
// operation.
func Dispatch(ctx context.Context, svc services.EventService, payload models.EventPayload) error {
	switch payload.EventType {
	case models.EventLoginSuccess:
		var cmd models.LoginCommand
		if err := json.Unmarshal(payload.Data, &cmd); err != nil {
			return fmt.Errorf("decode %s command: %w", payload.EventType, err)
		}
		return svc.ProcessSuccessfulLogin(ctx, cmd)
	case models.EventOrderCreated:
		var cmd models.OrderCommand
		if err := json.Unmarshal(payload.Data, &cmd); err != nil {
			return fmt.Errorf("decode %s command: %w", payload.EventType, err)
		}
		return svc.ProcessNewOrder(ctx, cmd)
	case models.EventOrderStatusChanged:
		var cmd models.OrderCommand
		if err := json.Unmarshal(payload.Data, &cmd); err != nil {
			return fmt.Errorf("decode %s command: %w", payload.EventType, err)
		}
		return svc.ProcessOrderStatusChange(ctx, cmd)
	case models.EventPasswordResetRequested:
		var cmd models.PasswordResetCommand
		if err := json.Unmarshal(payload.Data, &cmd); err != nil {
			return fmt.Errorf("decode %s command: %w", payload.EventType, err)
		}
		return svc.ProcessPasswordResetRequest(ctx, cmd)
	case models.EventPasswordResetVerified:
		var cmd models.PasswordResetCommand
		if err := json.Unmarshal(payload.Data, &cmd); err != nil {
			return fmt.Errorf("decode %s command: %w", payload.EventType, err)
		}
		return svc.ProcessPasswordResetVerified(ctx, cmd)
	case models.EventPasswordResetCompleted:
		var cmd models.PasswordResetCommand
		if err := json.Unmarshal(payload.Data, &cmd); err != nil {
			return fmt.Errorf("decode %s command: %w", payload.EventType, err)
		}
		return svc.ProcessPasswordResetCompleted(ctx, cmd)
	case models.EventPaymentCompleted:
		var cmd models.PaymentCommand
		if err := json.Unmarshal(payload.Data, &cmd); err != nil {
			return fmt.Errorf("decode %s command: %w", payload.EventType, err)
		}
		return svc.ProcessPaymentCompleted(ctx, cmd)
	case models.EventPaymentFailed:
		var cmd models.PaymentCommand
		if err := json.Unmarshal(payload.Data, &cmd); err != nil {
			return fmt.Errorf("decode %s command: %w", payload.EventType, err)
		}
		return svc.ProcessPaymentFailed(ctx, cmd)
	default:
		return fmt.Errorf("%w: %s", errUnknownEventType, payload.EventType)
	}
}
