package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderdesk/internal/application/archive"
	"orderdesk/internal/application/orders"
	"orderdesk/internal/config"
	"orderdesk/internal/infrastructure/http/commerce"
	ginserver "orderdesk/internal/infrastructure/http/gin"
	kafkainfra "orderdesk/internal/infrastructure/messaging/kafka"
	"orderdesk/internal/infrastructure/persistence/postgres"
	"orderdesk/internal/interfaces/http/handler"
	"orderdesk/internal/interfaces/http/router"
	"orderdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	lg, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := commerce.NewClient(cfg.Commerce, lg)
	orderService := orders.NewService(client, lg)

	// First load is best effort; the view reports the failure and the next
	// refresh retries.
	if err := orderService.Refresh(ctx); err != nil {
		lg.Warn("initial order fetch failed", logger.Error(err))
	}
	if cfg.List.AutoRefreshOn {
		go orderService.RunAutoRefresh(ctx, cfg.List.AutoRefreshInterval())
	}

	if cfg.Kafka.ArchiveOn {
		pool, err := postgres.NewPool(cfg.DB)
		if err != nil {
			lg.Fatal("postgres connection failed", logger.Error(err))
		}
		defer pool.Close()

		archiveService := archive.NewService(postgres.NewArchiveRepository(pool))
		consumer := kafkainfra.NewArchiveConsumer(cfg.Kafka, archiveService, lg)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				lg.Error("archive consumer stopped", logger.Error(err))
			}
		}()
		defer consumer.Close()
	}

	orderHandler := handler.NewOrderHandler(orderService)
	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, orderHandler)

	server := ginserver.NewServer(cfg.Server, engine)
	go func() {
		<-ctx.Done()
		lg.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("server shutdown failed", logger.Error(err))
		}
	}()

	lg.Info("starting api server",
		logger.String("addr", cfg.Server.Address()),
		logger.String("commerce", cfg.Commerce.BaseURL))
	if err := server.Run(); err != nil {
		lg.Fatal("server run failed", logger.Error(err))
	}
}
