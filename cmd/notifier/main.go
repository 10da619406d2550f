package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/config"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/consumer"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/mailer"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/service"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/circuitbreaker"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/logger"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Service: "notifier", Level: logger.ParseLevel(cfg.LogLevel)})
	slog.SetDefault(log)
	log.Info("notifier starting...", "brokers", cfg.KafkaBrokers, "group_id", cfg.KafkaGroupID)

	var wg sync.WaitGroup

	// Mail delivery
	var notifier service.Notifier = service.LogNotifier{}
	if cfg.NotifierMode != config.NotifierLog {
		breaker := circuitbreaker.New(circuitbreaker.Settings{Name: "smtp", Logger: log})
		notifier = mailer.NewSMTPMailer(mailer.Config{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SMTPUsername,
			Password:   cfg.SMTPPassword,
			From:       cfg.SMTPFrom,
			AdminInbox: cfg.AdminInbox,
		}, breaker)
	}

	// Start Kafka consumer
	notificationConsumer := consumer.NewNotificationConsumer(notifier, log, cfg.KafkaGroupID, cfg.KafkaBrokers...)
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	wg.Add(1)
	go func() {
		defer wg.Done()
		notificationConsumer.Run(consumerCtx)
	}()

	// Start gRPC health server
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		log.Error("failed to listen", "port", cfg.GRPCPort, "error", err)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		log.Info("notifier health listening", "port", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("failed to serve", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down notifier...")
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	grpcServer.GracefulStop()
	consumerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	doneChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneChan)
	}()

	select {
	case <-doneChan:
		log.Info("consumer stopped cleanly")
	case <-shutdownCtx.Done():
		log.Warn("consumer didn't stop in time")
	}

	if err := notificationConsumer.Close(); err != nil {
		log.Warn("failed to close consumer", "error", err)
	}
	log.Info("notifier stopped")
}
