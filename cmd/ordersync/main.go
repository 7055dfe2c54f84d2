package main

import (
	"context"
	"log"

	"orderdesk/internal/application/export"
	"orderdesk/internal/config"
	"orderdesk/internal/infrastructure/encoding/avro"
	"orderdesk/internal/infrastructure/http/commerce"
	kafkainfra "orderdesk/internal/infrastructure/messaging/kafka"
	"orderdesk/pkg/logger"
)

// One-shot sync: fetch every order from the commerce backend, normalize it
// and publish the result to the order topic. Run it from cron or by hand.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	lg, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}

	if cfg.Kafka.OrderTopic == "" {
		lg.Fatal("KAFKA_ORDER_TOPIC is empty")
	}
	if len(cfg.Kafka.Brokers) == 0 {
		lg.Fatal("KAFKA_BOOTSTRAP_SERVERS is empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := commerce.NewClient(cfg.Commerce, lg)

	producer, err := kafkainfra.NewRecordProducer(cfg.Kafka, lg)
	if err != nil {
		lg.Fatal("init kafka producer failed", logger.Error(err))
	}
	defer producer.Close(ctx)

	var encoder export.Encoder = export.JSONEncoder{}
	if cfg.Kafka.Format == "avro" {
		encoder, err = avro.NewEncoder()
		if err != nil {
			lg.Fatal("init avro encoder failed", logger.Error(err))
		}
	}

	svc := export.NewService(client, encoder, producer, lg)

	lg.Info("syncing orders to kafka",
		logger.String("topic", cfg.Kafka.OrderTopic),
		logger.String("format", cfg.Kafka.Format))

	n, err := svc.Sync(ctx)
	if err != nil {
		lg.Fatal("order sync failed", logger.Error(err), logger.Int("published", n))
	}

	lg.Info("order sync finished", logger.Int("published", n))
}
