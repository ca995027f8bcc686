package main

import (
	"context"
	"log"
	"time"

	"mun-chits/config"
	"mun-chits/internal/events"
	"mun-chits/internal/handler"
	"mun-chits/internal/redis"
	"mun-chits/internal/repository"
	"mun-chits/internal/server"
	"mun-chits/internal/services"
	"mun-chits/internal/storage"
	"mun-chits/internal/websocket"
	"mun-chits/pkg/database"
	"mun-chits/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	appLogger := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(appLogger)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer database.Close()
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	rdb, err := redis.Connect(ctx, redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, 3*time.Second)
	if err != nil {
		if cfg.RealtimeMode == config.RealtimeModeRedis {
			log.Fatalf("REALTIME_MODE=redis needs redis: %v", err)
		}
		appLogger.Warn(ctx, "redis unavailable, running without cache, presence and rate limits", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var (
		presence     *redis.PresenceStore
		presenceHook websocket.PresenceTracker
		heartbeat    websocket.Heartbeater
		userCache    services.UserCache
		guards       server.Guards
	)
	if rdb != nil {
		presence = redis.NewPresenceStore(rdb, 0)
		presenceHook = presence
		heartbeat = presence
		userCache = redis.NewUserCacheStore(rdb, 5*time.Minute)

		limiter := redis.NewRateLimiter(rdb, redis.RateLimitConfig{
			MessageLimit:  cfg.MessageRateLimit,
			MessageWindow: time.Minute,
			AuthLimit:     cfg.AuthRateLimit,
			AuthWindow:    time.Minute,
		})
		guards.MessageLimiter = limiter
		guards.AuthLimiter = limiter
	}

	hub := websocket.NewHub(presenceHook, appLogger)
	go hub.Run(ctx)

	notifier := newNotifier(ctx, cfg, rdb, presence, hub, appLogger)

	var objectStore services.ObjectStore
	if cfg.ArchiveEnabled() {
		s3Client, err := storage.NewClient(ctx, storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to init S3 client: %v", err)
		}
		objectStore = s3Client
	}

	authService := services.NewAuthService(userRepo, conversationRepo, userCache, cfg)
	messagingService := services.NewMessagingService(userRepo, conversationRepo, messageRepo, notifier, appLogger, cfg.ConversationPolicy)
	moderationService := services.NewModerationService(userRepo, conversationRepo, messageRepo, notifier, appLogger)
	archiveService := services.NewArchiveService(userRepo, conversationRepo, objectStore, cfg.S3PresignTTL, appLogger)

	guards.Auth = authService
	guards.HealthCheck = database.HealthCheck

	srv := server.New(cfg, appLogger)
	srv.SetupRoutes(&server.Handlers{
		Auth:       handler.NewAuthHandler(authService, appLogger, cfg.IsProduction()),
		Messages:   handler.NewMessageHandler(messagingService, appLogger),
		Moderation: handler.NewModerationHandler(moderationService, archiveService, appLogger),
		WebSocket:  websocket.NewHandler(authService, hub, heartbeat, appLogger).Connect,
	}, guards)

	if err := srv.Start(ctx); err != nil {
		appLogger.Error(ctx, "server stopped with error", zap.Error(err))
	}
}

// newNotifier picks the delivery path for pushes. In redis mode every
// instance relays frames published for the users it holds.
func newNotifier(ctx context.Context, cfg *config.Config, rdb *goredis.Client, presence *redis.PresenceStore, hub *websocket.Hub, l *logger.Logger) events.Notifier {
	if cfg.RealtimeMode != config.RealtimeModeRedis || rdb == nil {
		l.Infof("Realtime delivery: local hub")
		return events.NewLocalNotifier(hub)
	}

	bridge := websocket.NewRedisBridge(redis.NewSubscriber(rdb), hub, l)
	go func() {
		if err := bridge.Run(ctx); err != nil {
			l.Error(ctx, "redis bridge stopped", zap.Error(err))
		}
	}()

	l.Infof("Realtime delivery: redis pub/sub")
	return events.NewRedisNotifier(redis.NewPublisher(rdb), presence)
}
