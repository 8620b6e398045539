package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/voxday/planner-api/internal/config"
	"github.com/voxday/planner-api/internal/database"
	"github.com/voxday/planner-api/internal/logger"
	"github.com/voxday/planner-api/internal/queue"
	"github.com/voxday/planner-api/internal/services/calls"
	"github.com/voxday/planner-api/internal/timeofday"
	"github.com/voxday/planner-api/internal/watcher"
	"github.com/voxday/planner-api/internal/workers"
)

func main() {
	// Parse command-line flags
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override debug mode if flag is set
	debugMode := cfg.WorkerDebugMode || *debugFlag

	// Initialize logger
	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			// Ignore sync errors in production
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_worker",
		zap.Bool("debug_mode", debugMode),
		zap.String("timezone", cfg.Timezone),
		zap.String("call_service_url", cfg.CallServiceURL),
	)

	// Initialize database connection
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()

	zapLogger.Info("connected_to_database")

	// Initialize repositories
	profileRepo := database.NewProfileRepository(db)

	// Initialize RabbitMQ queue
	jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_rabbitmq", zap.Error(err))
	}
	defer func() {
		if err := jobQueue.Close(); err != nil {
			zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
		}
	}()

	zapLogger.Info("connected_to_rabbitmq",
		zap.Int("prefetch", cfg.RabbitMQPrefetch),
	)

	// Reference location for call-time parsing
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		zapLogger.Fatal("invalid_timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}
	parser := timeofday.NewParser(loc)

	// Outbound call client and scheduler
	callClient := calls.NewClient(cfg.CallServiceURL, cfg.CallServiceKey)
	scheduler := calls.NewScheduler(parser, callClient, cfg.CallAssistantID, cfg.CallPhoneNumberID, zapLogger)

	// Call worker consuming schedule-call jobs
	callWorker := workers.NewCallWorker(scheduler, zapLogger)

	// Profile watcher turning call-time changes into jobs
	profileWatcher, err := watcher.New(cfg.DatabaseURL, profileRepo, jobQueue, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed_to_start_profile_watcher", zap.Error(err))
	}
	defer func() {
		if err := profileWatcher.Close(); err != nil {
			zapLogger.Warn("failed_to_close_profile_watcher", zap.Error(err))
		}
	}()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the profile watcher
	go func() {
		if err := profileWatcher.Run(ctx); err != nil && err != context.Canceled {
			zapLogger.Error("profile_watcher_stopped_with_error", zap.Error(err))
		}
	}()

	// Start consuming messages
	msgChan, errChan, err := jobQueue.Consume(ctx, cfg.RabbitMQPrefetch)
	if err != nil {
		zapLogger.Fatal("failed_to_start_consuming_messages", zap.Error(err))
	}

	zapLogger.Info("worker_started_consuming_messages")

	// Process messages
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgChan:
				if !ok {
					zapLogger.Info("message_channel_closed")
					return
				}

				// Process job
				if err := callWorker.ProcessJob(ctx, msg); err != nil {
					zapLogger.Error("failed_to_process_job",
						zap.Error(err),
						zap.String("job_id", msg.GetJob().ID.String()),
						zap.String("job_type", string(msg.GetJob().Type)),
					)
				}
			}
		}
	}()

	// Handle errors
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-errChan:
				if !ok {
					return
				}
				zapLogger.Error("queue_error", zap.Error(err))
			}
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	zapLogger.Info("shutdown_signal_received_stopping_worker")

	// Cancel context to stop processing
	cancel()

	zapLogger.Info("worker_stopped")
}
