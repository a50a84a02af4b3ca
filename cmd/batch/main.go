package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stocknote/stocknote-backend/internal/batch"
	"github.com/stocknote/stocknote-backend/internal/config"
	"github.com/stocknote/stocknote-backend/internal/repository"
	pkglogger "github.com/stocknote/stocknote-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Standalone batch runner for deployments that keep scraping out of the API
// process. With -once it runs every job a single time and exits.
func main() {
	once := flag.Bool("once", false, "run all jobs immediately and exit")
	flag.Parse()

	config.LoadDotEnv()

	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)

	cfg, err := config.Load(fmt.Sprintf("configs/config.%s.yaml", env))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	marketRepo := repository.NewMarketRepository(db)
	userRepo := repository.NewUserRepository(db)
	scheduler := batch.NewScheduler(marketRepo, userRepo)

	if *once {
		scheduler.RunOnce()
		return
	}

	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	scheduler.Stop()
}
