package main

import (
	"context"
	"log"
	"time"

	"carspace/config"
	"carspace/internal/handler"
	"carspace/internal/notify"
	"carspace/internal/outbox"
	"carspace/internal/redis"
	"carspace/internal/repository"
	"carspace/internal/server"
	"carspace/internal/services"
	"carspace/internal/storage"
	"carspace/internal/websocket"
	"carspace/pkg/database"
	"carspace/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(l)

	db, err := database.Connect(cfg)
	if err != nil {
		l.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.ApplyRawMigrations("migrations"); err != nil {
		l.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	publisher := redis.NewPublisher(redisClient)
	subscriber := redis.NewSubscriber(redisClient)
	limiter := redis.NewRateLimiter(redisClient, redis.DefaultRateLimitConfig())

	// Catalog reads go through the restricted tier; chat and fan-out writes
	// need the elevated tier that bypasses row-level policies.
	userRepo := repository.NewUserRepository(db.Admin)
	roomRepo := repository.NewRoomRepository(db.Read)
	carRepo := repository.NewCarRepository(db.Read)
	bookingRepo := repository.NewBookingRepository(db.Read)
	convRepo := repository.NewConversationRepository(db.Admin)
	msgRepo := repository.NewMessageRepository(db.Admin)
	notificationRepo := repository.NewNotificationRepository(db.Admin)
	outboxRepo := repository.NewOutboxRepository(db.Admin)

	var s3Client *storage.Client
	if cfg.S3Bucket != "" {
		s3Client, err = storage.NewClient(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
			PresignTTL: 15 * time.Minute,
		})
		if err != nil {
			l.Fatalf("Failed to create S3 client: %v", err)
		}
	} else {
		l.Warnf("S3 is not configured, uploads are disabled")
	}

	authService := services.NewAuthService(userRepo, cfg)
	chatService := services.NewChatService(db.Admin, convRepo, msgRepo, roomRepo, outboxRepo, l)
	roomService := services.NewRoomService(roomRepo)
	carService := services.NewCarService(carRepo, roomRepo)
	bookingService := services.NewBookingService(bookingRepo, carRepo, roomRepo)
	estimatorService := services.NewEstimatorService()
	analyticsService := services.NewAnalyticsService(roomRepo, carRepo, bookingRepo, convRepo)
	uploadService := services.NewUploadService(s3Client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	bridge := websocket.NewRedisBridge(subscriber, hub)
	go func() {
		if err := bridge.Run(ctx, []string{"chat-*", "bell:*"}); err != nil {
			l.Errorf("Redis bridge stopped: %v", err)
		}
	}()

	push := notify.NewPushClient(cfg.PushEndpoint, cfg.PushAPIKey)
	processor := outbox.NewProcessor(
		outboxRepo,
		notificationRepo,
		publisher,
		push,
		l,
		cfg.OutboxBatchSize,
		time.Duration(cfg.OutboxIntervalMS)*time.Millisecond,
		cfg.OutboxMaxRetries,
	)
	go processor.Run(ctx)

	authorizer := websocket.NewChannelAuthorizer(convRepo, roomRepo)
	wsHandler := websocket.NewHandler(authService, hub, authorizer)

	handlers := &server.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Chat:         handler.NewChatHandler(chatService, uploadService),
		Room:         handler.NewRoomHandler(roomService),
		Car:          handler.NewCarHandler(carService),
		Booking:      handler.NewBookingHandler(bookingService),
		Estimator:    handler.NewEstimatorHandler(estimatorService),
		Notification: handler.NewNotificationHandler(notificationRepo),
		Upload:       handler.NewUploadHandler(uploadService),
		Admin:        handler.NewAdminHandler(chatService, analyticsService),
		WS:           wsHandler,
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter, db)

	if err := srv.Start(); err != nil {
		l.Fatalf("Server error: %v", err)
	}
}
