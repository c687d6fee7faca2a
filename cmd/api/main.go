package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "planloop/internal/adapter/db"
	httpadapter "planloop/internal/adapter/http"
	"planloop/internal/adapter/http/handlers"
	httpmiddleware "planloop/internal/adapter/http/middleware"
	appservice "planloop/internal/app/service"
	"planloop/internal/config"
	"planloop/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	taskRepository := dbadapter.NewTaskRepository(db)
	taskService := appservice.NewTaskService(taskRepository, handlers.RequestConfirmer())

	session := appservice.NewSyncSession(taskService.Reload, appservice.DefaultDebounce)
	taskService.SetSyncGuard(session)
	if err := session.StartResync(cfg.ResyncInterval); err != nil {
		logger.Fatal("failed to start resync schedule", zap.Error(err))
	}
	defer session.Stop()

	if err := taskService.Reload(context.Background()); err != nil {
		logger.Fatal("failed to load task collection", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	healthHandler := handlers.NewHealthHandler(db)
	taskHandler := handlers.NewTaskHandler(taskService)
	syncHandler := handlers.NewSyncHandler(session)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler, syncHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
