package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zixzorash/BURN-SUB/internal/burnjobs/repository"
	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/internal/engine"
	"github.com/Zixzorash/BURN-SUB/internal/worker"
	"github.com/Zixzorash/BURN-SUB/pkg/db/aws"
	"github.com/Zixzorash/BURN-SUB/pkg/db/postgres"
	clientRedis "github.com/Zixzorash/BURN-SUB/pkg/db/redis"
	"github.com/Zixzorash/BURN-SUB/pkg/logger"
)

func main() {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yml"
	}

	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	defer psqlDB.Close()

	redisClient, err := clientRedis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	defer redisClient.Close()

	s3Client, presignClient, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not connect to s3: %s", err)
	}

	jobsRepo := repository.NewBurnJobsRepo(psqlDB)
	redisRepo := repository.NewBurnJobsRedisRepo(redisClient, appLogger)
	awsRepo := repository.NewAwsRepository(s3Client, presignClient)

	eng := engine.NewFFmpeg(cfg, appLogger)
	processor := worker.NewProcessor(cfg, appLogger, eng, jobsRepo, redisRepo, awsRepo)
	w := worker.NewWorker(cfg, appLogger, eng, redisRepo, processor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("shutting down")
		cancel()
	}()

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		appLogger.Fatalf("worker stopped: %v", err)
	}
}
