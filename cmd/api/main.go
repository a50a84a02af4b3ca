package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stocknote/stocknote-backend/internal/batch"
	"github.com/stocknote/stocknote-backend/internal/config"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/handler"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/internal/routes"
	"github.com/stocknote/stocknote-backend/internal/service"
	pkgcache "github.com/stocknote/stocknote-backend/pkg/cache"
	"github.com/stocknote/stocknote-backend/pkg/jwt"
	pkglogger "github.com/stocknote/stocknote-backend/pkg/logger"
	pkgredis "github.com/stocknote/stocknote-backend/pkg/redis"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to PostgreSQL")

	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Info("Warning: Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
		pkglogger.Info("Cache service initialized")
	}

	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
	)

	// Repositories
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	viewRepo := repository.NewViewRepository(db)
	userRepo := repository.NewUserRepository(db)
	marketRepo := repository.NewMarketRepository(db)

	// Services
	accessTTL := time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute
	refreshTTL := time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, jwtManager, accessTTL, refreshTTL)
	oauthService := service.NewOAuthService(userRepo, authService, cfg.Google)
	userService := service.NewUserService(userRepo)
	boardService := service.NewBoardService(postRepo, commentRepo, likeRepo, viewRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	likeService := service.NewLikeService(likeRepo, postRepo)
	marketService := service.NewMarketService(marketRepo, cacheService)

	router := routes.Setup(cfg, jwtManager, routes.Handlers{
		Auth:   handler.NewAuthHandler(authService, oauthService),
		User:   handler.NewUserHandler(userService),
		Board:  handler.NewBoardHandler(boardService, commentService, likeService),
		Market: handler.NewMarketHandler(marketService),
	})

	// In-process scheduler; deployments that run cmd/batch separately
	// disable it here
	var scheduler *batch.Scheduler
	if cfg.Batch.Enabled {
		scheduler = batch.NewScheduler(marketRepo, userRepo)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start batch scheduler: %v", err)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		pkglogger.Info("Server listening on :%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	pkglogger.Info("Shutting down...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	pkglogger.Info("Server stopped")
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Server.Env == "local" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Account{},
		&domain.RefreshToken{},
		&domain.FreeBoard{},
		&domain.StrategyBoard{},
		&domain.PostLike{},
		&domain.PostView{},
		&domain.StockInfo{},
		&domain.SectorInfo{},
		&domain.ThemeInfo{},
		&domain.IndexInfo{},
		&domain.IndexOhlcv{},
		&domain.StockSectorRelation{},
		&domain.StockThemeRelation{},
		&domain.KiwoomAPIInfo{},
	); err != nil {
		return err
	}

	// Post, comment, and attachment tables exist once per board
	for _, kind := range []domain.PostKind{domain.KindFree, domain.KindStrategy} {
		if err := db.Table(kind.PostTable()).AutoMigrate(&domain.Post{}); err != nil {
			return err
		}
		if err := db.Table(kind.CommentTable()).AutoMigrate(&domain.Comment{}); err != nil {
			return err
		}
		if err := db.Table(kind.AttachmentTable()).AutoMigrate(&domain.Attachment{}); err != nil {
			return err
		}
	}
	return nil
}
