package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/Divyeshhhh/steamy-sips/pkg/kafka"
)

// Product topics published by the catalog service.
var (
	TopicProductCreated = pkgkafka.Topic("product", "created")
	TopicProductUpdated = pkgkafka.Topic("product", "updated")
	TopicProductDeleted = pkgkafka.Topic("product", "deleted")
)

// ProductTopics lists the topics the consumer subscribes to.
func ProductTopics() []string {
	return []string{TopicProductCreated, TopicProductUpdated, TopicProductDeleted}
}

// CatalogInvalidator defines the interface required by the event consumer.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}

// ProductChangedData is the subset of product event payloads the storefront
// reads.
type ProductChangedData struct {
	ID any `json:"id"`
}

// Consumer drops the cached catalog whenever a product changes.
type Consumer struct {
	catalog CatalogInvalidator
	logger  *slog.Logger
}

// NewConsumer creates a new event consumer.
func NewConsumer(catalog CatalogInvalidator, logger *slog.Logger) *Consumer {
	return &Consumer{catalog: catalog, logger: logger}
}

// Handle processes a product event. Unknown event types are ignored.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.Type {
	case TopicProductCreated, TopicProductUpdated, TopicProductDeleted:
	default:
		c.logger.DebugContext(ctx, "ignoring event", slog.String("event_type", event.Type))
		return nil
	}

	var data ProductChangedData
	if err := event.Decode(&data); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "product changed, invalidating catalog",
		slog.String("event_type", event.Type),
		slog.String("product_id", fmt.Sprint(data.ID)),
	)

	if err := c.catalog.InvalidateCatalog(ctx); err != nil {
		return fmt.Errorf("invalidate catalog after %s: %w", event.Type, err)
	}
	return nil
}
