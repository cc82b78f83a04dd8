package services

import (
	"context"
	"encoding/json"
	"time"

	"bookstore-service/common/logger"
	aws_pkg "bookstore-service/pkg/aws"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced     = "order_placed"
	EventReturnRequested = "return_requested"
)

type OrderPlacedEvent struct {
	Event          string          `json:"event"`
	OrderID        uint            `json:"order_id"`
	UserEmail      string          `json:"user_email"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ItemCount      int             `json:"item_count"`
	DeliveryMethod string          `json:"delivery_method"`
	PaymentMethod  string          `json:"payment_method"`
	Timestamp      time.Time       `json:"timestamp"`
}

type ReturnRequestedEvent struct {
	Event       string    `json:"event"`
	OrderID     uint      `json:"order_id"`
	OrderItemID uint      `json:"order_item_id"`
	BookID      uint      `json:"book_id"`
	UserEmail   string    `json:"user_email"`
	Timestamp   time.Time `json:"timestamp"`
}

// eventPublisher publishes best effort: failures are logged, never returned.
// A nil client or empty topic disables publishing.
type eventPublisher struct {
	client   aws_pkg.SNSPublisher
	topicArn string
	logger   *zap.Logger
}

func (p eventPublisher) publish(ctx context.Context, eventType string, payload interface{}) {
	if p.client == nil || p.topicArn == "" {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.String("event", eventType), zap.Error(err))
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.client.Publish(pubCtx, p.topicArn, eventType, body); err != nil {
		p.logger.Warn("Failed to publish event",
			zap.String("event", eventType),
			logger.RequestIDField(ctx),
			zap.Error(err),
		)
	}
}
