package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Divyeshhhh/steamy-sips/internal/discussion"
	pkgkafka "github.com/Divyeshhhh/steamy-sips/pkg/kafka"
)

// TopicIntegrityWarning carries comment threads that could not be attached
// to their review because of a parent cycle or a duplicated id.
var TopicIntegrityWarning = pkgkafka.Topic("discussion", "integrity_warning")

const (
	AggregateTypeProduct = "product"
	SourceStorefront     = "storefront-service"
)

// IntegrityWarningData is the payload of an integrity_warning event.
type IntegrityWarningData struct {
	ProductID int64                         `json:"product_id"`
	Warnings  []discussion.IntegrityWarning `json:"warnings"`
}

// Publisher is implemented by *pkgkafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes storefront domain events.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// PublishIntegrityWarnings emits one event for all warnings raised while
// rendering a product page.
func (p *Producer) PublishIntegrityWarnings(ctx context.Context, productID int64, warnings []discussion.IntegrityWarning) error {
	if len(warnings) == 0 {
		return nil
	}

	data := IntegrityWarningData{ProductID: productID, Warnings: warnings}
	event, err := pkgkafka.NewEvent(ctx, TopicIntegrityWarning, AggregateTypeProduct,
		strconv.FormatInt(productID, 10), SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create integrity_warning event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicIntegrityWarning, event); err != nil {
		return fmt.Errorf("publish integrity_warning event: %w", err)
	}

	p.logger.DebugContext(ctx, "published integrity_warning event",
		slog.Int64("product_id", productID),
		slog.Int("warnings", len(warnings)),
	)
	return nil
}
