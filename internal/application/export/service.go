// Package export pushes normalized order records to a Kafka topic for
// downstream analytics. It reuses the same fetch-and-normalize path as the
// dashboard list; only the sink differs.
package export

import (
	"context"
	"encoding/json"
	"fmt"

	"orderdesk/internal/domain/order"
	"orderdesk/internal/infrastructure/encoding/orderjson"
	"orderdesk/pkg/logger"
)

// Fetcher abstracts the commerce client so the service is testable.
type Fetcher interface {
	ListOrders(ctx context.Context) ([]json.RawMessage, error)
}

// Encoder turns a normalized record into a wire payload.
type Encoder interface {
	Encode(rec order.Record) ([]byte, error)
}

// Publisher hands an encoded payload to the topic.
type Publisher interface {
	PublishRecord(ctx context.Context, payload []byte) error
}

// JSONEncoder is the default record encoding.
type JSONEncoder struct{}

func (JSONEncoder) Encode(rec order.Record) ([]byte, error) {
	return json.Marshal(rec)
}

type Service struct {
	fetcher   Fetcher
	encoder   Encoder
	publisher Publisher
	log       logger.Logger
}

func NewService(fetcher Fetcher, encoder Encoder, publisher Publisher, log logger.Logger) *Service {
	return &Service{
		fetcher:   fetcher,
		encoder:   encoder,
		publisher: publisher,
		log:       log,
	}
}

// Sync fetches every order, normalizes it and publishes the result. Payloads
// that do not decode are skipped; a publish failure stops the run.
func (s *Service) Sync(ctx context.Context) (int, error) {
	payloads, err := s.fetcher.ListOrders(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch orders: %w", err)
	}

	count := 0
	for _, raw := range payloads {
		rec, err := orderjson.FromJSON(raw)
		if err != nil {
			s.log.Warn("skipping undecodable order payload", logger.Error(err))
			continue
		}

		encoded, err := s.encoder.Encode(rec)
		if err != nil {
			return count, fmt.Errorf("encode record %s: %w", rec.ID, err)
		}
		if err := s.publisher.PublishRecord(ctx, encoded); err != nil {
			return count, fmt.Errorf("publish record %s: %w", rec.ID, err)
		}
		count++
	}
	return count, nil
}
