package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bidworks/backend/internal/config"
	"github.com/bidworks/backend/internal/db"
	httpHandlers "github.com/bidworks/backend/internal/http/handlers"
	httpRouter "github.com/bidworks/backend/internal/http/router"
	"github.com/bidworks/backend/internal/logger"
	"github.com/bidworks/backend/internal/repository"
	"github.com/bidworks/backend/internal/service"
	"github.com/bidworks/backend/internal/storage"
	"github.com/bidworks/backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера.
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	fileStorage, err := storage.NewFileStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn)
	bidRepo := repository.NewBidRepository(dbConn)
	walletRepo := repository.NewWalletRepository(dbConn)
	reviewRepo := repository.NewReviewRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	projectService := service.NewProjectService(projectRepo)
	bidService := service.NewBidService(bidRepo, projectRepo)
	walletService := service.NewWalletService(walletRepo, userRepo)
	reviewService := service.NewReviewService(reviewRepo, projectRepo)

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run()

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService, tokenManager, cfg.CookieName, cfg.CookieSecure)
	projectHandler := httpHandlers.NewProjectHandler(projectService, hub)
	bidHandler := httpHandlers.NewBidHandler(bidService, projectService, hub)
	walletHandler := httpHandlers.NewWalletHandler(walletService, hub)
	reviewHandler := httpHandlers.NewReviewHandler(reviewService)
	mediaHandler := httpHandlers.NewMediaHandler(fileStorage, mediaRepo)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager, cfg.CookieName)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		projectHandler,
		bidHandler,
		walletHandler,
		reviewHandler,
		mediaHandler,
		wsHandler,
		healthHandler,
		tokenManager,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
