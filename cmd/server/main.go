package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/yezwei/news-xinjin/internal/api/handler"
	"github.com/yezwei/news-xinjin/internal/api/router"
	"github.com/yezwei/news-xinjin/internal/captcha"
	"github.com/yezwei/news-xinjin/internal/config"
	"github.com/yezwei/news-xinjin/internal/model"
	"github.com/yezwei/news-xinjin/internal/repository"
	"github.com/yezwei/news-xinjin/internal/service"
	"github.com/yezwei/news-xinjin/internal/session"
	"github.com/yezwei/news-xinjin/internal/sms"
	"github.com/yezwei/news-xinjin/internal/storage"
	"github.com/yezwei/news-xinjin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogPath, cfg.Development()); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		}); err != nil {
			logger.Warn("sentry 初始化失败", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	if cfg.OTLPEndpoint != "" {
		tp, err := tracerProvider(ctx, cfg.OTLPEndpoint)
		if err != nil {
			logger.Warn("otel 初始化失败", zap.Error(err))
		} else {
			otel.SetTracerProvider(tp)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tp.Shutdown(shutdownCtx)
			}()
		}
	}

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		logger.Error("连接数据库失败", zap.Error(err))
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.UserFollow{},
		&model.UserCollection{},
		&model.Category{},
		&model.News{},
		&model.Comment{},
		&model.CommentLike{},
	); err != nil {
		logger.Error("建表失败", zap.Error(err))
		os.Exit(1)
	}

	// 业务缓存与 session 分库
	cache := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	sessionRdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.SessionRedisDB,
	})
	if err := cache.Ping(ctx).Err(); err != nil {
		logger.Error("连接 redis 失败", zap.Error(err))
		os.Exit(1)
	}

	store, err := storage.NewLocalStore(cfg.StoragePath)
	if err != nil {
		logger.Error("初始化图片存储失败", zap.Error(err))
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	sender := sms.NewCCP(cfg.SMSAccountSID, cfg.SMSAuthToken, cfg.SMSAppID, cfg.SMSServerURL)
	sessions := session.NewStore(sessionRdb, cfg.SecretKey, cfg.SessionTTL())

	h := handler.New(
		service.NewPassportService(userRepo, cache, sender, captcha.NewDigitGenerator()),
		service.NewNewsService(newsRepo, categoryRepo),
		service.NewRelationService(userRepo, followRepo),
		service.NewCollectService(newsRepo, collectionRepo),
		service.NewCommentService(db, newsRepo, commentRepo),
		service.NewProfileService(userRepo, newsRepo, categoryRepo, store),
		service.NewAdminService(userRepo, newsRepo, categoryRepo, store),
		sessions,
		cfg.SessionLifetime,
		cfg.StoragePrefix,
	)

	engine := router.Setup(h, sessions, userRepo, cfg.Development())
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: engine,
	}

	go func() {
		logger.Info("服务启动", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("服务异常退出", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务关闭中")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务关闭异常", zap.Error(err))
	}
}

// tracerProvider otlp http 上报的链路追踪
func tracerProvider(ctx context.Context, endpoint string) (*sdktrace.TracerProvider, error) {
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp)), nil
}
