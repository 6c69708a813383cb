package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"resumelab/internal/config"
	"resumelab/internal/database"
	"resumelab/internal/metrics"
	"resumelab/internal/render/pipeline"
	"resumelab/internal/state"
	"resumelab/internal/storage"
	"resumelab/internal/store"
	"resumelab/internal/tasks"
	"resumelab/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Println("database connection ready for worker")

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	blobs := store.NewGormStore(db, logger)
	source := &state.Source{
		Repo:   database.NewProfileRepo(db),
		Drafts: blobs,
		Styles: blobs,
		Redis:  redisClient,
	}

	pl, err := pipeline.New(logger, cfg.Render.RasterScale)
	if err != nil {
		log.Fatalf("init render pipeline: %v", err)
	}

	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
	})

	artifactHandler := worker.NewArtifactTaskHandler(
		db,
		storageClient,
		redisClient,
		source,
		pl,
		logger,
		cfg.Render.EstimateHeights,
		cfg.Render.VectorEnabled,
	)

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypeArtifactGenerate, artifactHandler)

	logger.Info("worker service started", slog.String("redis_addr", redisAddr))
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}
