package main

import (
	"context"
	"cybersentry-service/internal/app/config"
	"cybersentry-service/internal/app/delivery/http/middlewares"
	"cybersentry-service/internal/app/delivery/http/routers"
	"cybersentry-service/internal/app/drivers/database"
	"cybersentry-service/internal/app/drivers/logger"
	smtpdriver "cybersentry-service/internal/app/drivers/mailer"
	"cybersentry-service/internal/app/drivers/messaging"
	"cybersentry-service/internal/app/drivers/storage"
	"cybersentry-service/internal/app/services/core/credentials"
	"cybersentry-service/internal/app/services/core/operations"
	"cybersentry-service/internal/app/services/core/scans"
	"cybersentry-service/internal/app/services/shared/locker"
	sharedmailer "cybersentry-service/internal/app/services/shared/mailer"
	"cybersentry-service/internal/app/services/shared/redis"
	sharedstorage "cybersentry-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()
	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	smtpClient := smtpdriver.NewSMTPClient(driverConfig)
	chiRouter := chi.NewRouter()

	ctx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	stopSweeper := bootstrapingTheApp(ctx, config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}, smtpClient, log)
	defer stopSweeper()

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap config.Bootstrap, smtpClient *smtpdriver.SMTPClient, log *logrus.Logger) (stopSweeper func()) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Middlewares
	appMiddlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}

	// Mailer
	mailerService, err := sharedmailer.NewMailerService(
		smtpClient,
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.Mailer.RabbitMQMailerQueue,
		bootstrap.InternalConfig.Operation.ValidityWindowInMinutes,
		bootstrap.InternalConfig.Minio.PresignedUrlExpiryTimeInHours,
	)
	if err != nil {
		log.Fatalf("Failed to initialize mailer service: %v", err)
	}
	deliveryWorker, err := sharedmailer.NewDeliveryWorker(
		bootstrap.Logger,
		bootstrap.RabbitMQ,
		smtpClient,
		bootstrap.InternalConfig.Mailer.RabbitMQMailerQueue,
	)
	if err != nil {
		log.Fatalf("Failed to initialize mail delivery worker: %v", err)
	}
	go func() {
		if err := deliveryWorker.Start(ctx); err != nil {
			log.Fatalf("Mail delivery worker stopped: %v", err)
		}
	}()

	// Artifact storage
	artifactStorage := sharedstorage.NewMinioStorage(bootstrap.Minio, bootstrap.InternalConfig.Minio.BucketName)

	// IP feed
	ipFeedClient := scans.NewIPFeedClient(
		bootstrap.InternalConfig.IPFeed.BaseUrl,
		bootstrap.InternalConfig.IPFeed.TimeoutInSeconds,
		bootstrap.Logger,
	)

	// Operations
	operationRedisRepository := operations.NewOperationRedisRepository(bootstrap.Redis)
	operationMongoRepository := operations.NewOperationMongoRepository(bootstrap.MongoDB, bootstrap.InternalConfig.MongoDB.DbName)
	operationUsecase := operations.NewOperationUsecase(
		operationRedisRepository,
		operationMongoRepository,
		ipFeedClient,
		mailerService,
		artifactStorage,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	operationController := operations.NewOperationController(bootstrap.Logger, operationUsecase, bootstrap.InternalConfig.App.RequestTimeoutInSeconds)

	sweeper := operations.NewSweeper(bootstrap.Logger, lockerService, operationUsecase, bootstrap.InternalConfig)
	stopSweeper = sweeper.Start(ctx)

	// Credentials
	credentialUsecase := credentials.NewCredentialUsecase(operationUsecase, mailerService, bootstrap.Logger)
	credentialController := credentials.NewCredentialController(bootstrap.Logger, credentialUsecase, bootstrap.InternalConfig.App.RequestTimeoutInSeconds)

	// Scans
	scanUsecase := scans.NewScanUsecase(operationUsecase, mailerService, ipFeedClient, bootstrap.Logger)
	scanController := scans.NewScanController(bootstrap.Logger, scanUsecase, bootstrap.InternalConfig.App.RequestTimeoutInSeconds)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, appMiddlewares, credentialController, scanController, operationController)

	return stopSweeper
}
