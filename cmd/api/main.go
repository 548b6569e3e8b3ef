package main

import (
	"context"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"arcmarket/internal/adapter/api"
	"arcmarket/internal/adapter/api/handler"
	apimiddleware "arcmarket/internal/adapter/api/middleware"
	"arcmarket/internal/adapter/api/router"
	"arcmarket/internal/adapter/repository"
	"arcmarket/internal/infrastructure/moderation"
	"arcmarket/internal/infrastructure/mongodb"
	"arcmarket/internal/infrastructure/storage"
	"arcmarket/internal/usecase"
	"arcmarket/pkg/config"
	"arcmarket/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Error("Failed to connect to MongoDB: %v", err)
		log.Fatal(err)
	}
	defer client.Disconnect(ctx)

	if err := repository.EnsureCollectionIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure collection indexes: %v", err)
	}
	if err := repository.EnsureItemIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure item indexes: %v", err)
	}
	if err := repository.EnsurePersonIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure person indexes: %v", err)
	}

	awsOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		log.Fatalf("Failed to load AWS configuration: %v", err)
	}

	imageStore := storage.NewS3Client(awsCfg, cfg.S3Bucket)
	moderationService := moderation.NewRekognitionClient(awsCfg, cfg.S3Bucket)

	collectionRepo := repository.NewMongoCollectionRepository(db)
	itemRepo := repository.NewMongoItemRepository(db)
	personRepo := repository.NewMongoPersonRepository(db)
	activityRepo := repository.NewMongoActivityRepository(db)

	enricher := usecase.NewMetricsEnricher(collectionRepo, itemRepo, personRepo, activityRepo)

	collectionUsecase := usecase.NewCollectionUsecase(
		collectionRepo, itemRepo, personRepo, activityRepo,
		enricher, imageStore, moderationService,
		usecase.ContractAddresses{ARC721: cfg.ARC721Address, ARC1155: cfg.ARC1155Address},
	)
	itemUsecase := usecase.NewItemUsecase(itemRepo, collectionRepo, personRepo, activityRepo)
	personUsecase := usecase.NewPersonUsecase(personRepo, itemRepo, collectionRepo, activityRepo, enricher, imageStore)

	handler.Setup(collectionUsecase, itemUsecase, personUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authMiddleware := apimiddleware.NewAuthMiddleware(cfg.JWTSecret)
	router.Setup(e, authMiddleware)

	logger.Info("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		logger.Error("Server stopped: %v", err)
	}
}
