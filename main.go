// File: clubpoints/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clubpoints/config"
	"clubpoints/handlers"
	"clubpoints/middleware"
	"clubpoints/routes"
	"clubpoints/services"
	"clubpoints/store"
	"clubpoints/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Storage and session state.
	fileStore := store.NewFileStore()
	doc, err := fileStore.Load(config.AppConfig.DataFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to read default data file: %v", err)
	}
	state := services.NewSession(doc, config.AppConfig.DataFile)
	if doc == nil {
		logger.Info("No default document found; waiting for upload",
			zap.String("path", config.AppConfig.DataFile))
	}

	// Services.
	sessionService := &services.DefaultSessionService{Store: fileStore}
	syncService := &services.DefaultSyncService{ConfiguredBaseYear: config.AppConfig.BaseYear}
	renameService := &services.DefaultRenameService{}
	resortService := &services.DefaultResortService{}

	editorHandler := handlers.NewEditorHandler(
		state, fileStore, sessionService, syncService, renameService, resortService)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, editorHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
