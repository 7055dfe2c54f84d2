package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"orderdesk/internal/application/archive"
	"orderdesk/internal/config"
	"orderdesk/internal/domain/order"
	"orderdesk/pkg/logger"
)

// ArchiveConsumer reads normalized records off the export topic and hands
// them to the archive service. Only the JSON record encoding is consumable.
type ArchiveConsumer struct {
	reader  *kafkago.Reader
	handler *archive.Service
	log     logger.Logger
}

func NewArchiveConsumer(cfg config.KafkaConfig, handler *archive.Service, log logger.Logger) *ArchiveConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.OrderTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &ArchiveConsumer{
		reader:  reader,
		handler: handler,
		log:     log,
	}
}

func (c *ArchiveConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var rec order.Record
		if err := json.Unmarshal(msg.Value, &rec); err != nil {
			// a bad message must not wedge the whole consumer
			c.log.Warn("skipping undecodable archive message", logger.Error(err))
			continue
		}

		if err := c.handler.HandleRecord(ctx, rec); err != nil {
			return fmt.Errorf("handle record: %w", err)
		}
	}
}

func (c *ArchiveConsumer) Close() {
	_ = c.reader.Close()
}
