package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbeaumont/assets-ms-go/internal/cache"
	"github.com/mbeaumont/assets-ms-go/internal/config"
	"github.com/mbeaumont/assets-ms-go/internal/deriver"
	"github.com/mbeaumont/assets-ms-go/internal/handler/api"
	"github.com/mbeaumont/assets-ms-go/internal/logger"
	cMiddleware "github.com/mbeaumont/assets-ms-go/internal/middleware"
	"github.com/mbeaumont/assets-ms-go/internal/port"
	"github.com/mbeaumont/assets-ms-go/internal/renderer"
	"github.com/mbeaumont/assets-ms-go/internal/storage"
	"github.com/mbeaumont/assets-ms-go/internal/storagepath"
	assetSvc "github.com/mbeaumont/assets-ms-go/internal/usecase/asset"
	msuuid "github.com/mbeaumont/assets-ms-go/internal/uuid"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	strg := initStorage(ctx, cfg)
	resolver := initResolver(ctx, cfg)

	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured — descriptor caching is disabled")
	}

	drv := deriver.NewDeriver(strg, resolver, deriver.NewWebPEncoder(), cfg.ResponsiveWidths)
	limits := assetSvc.SizeLimits{Default: cfg.MaxUploadBytes, PerCategory: cfg.SizeLimits}

	r := initRouter(ctx)

	uploaderSvc := assetSvc.NewAssetUploader(strg, drv, resolver, msuuid.NewUUID, limits, drv.Widths())
	r.Post("/assets/{category}", api.UploadAssetHandler(uploaderSvc))

	deleterSvc := assetSvc.NewAssetDeleter(strg, ca, resolver, drv.Widths())
	r.With(cMiddleware.WithAssetRef()).
		Delete("/assets/{category}/{file}", api.DeleteAssetHandler(deleterSvc))

	replacerSvc := assetSvc.NewAssetReplacer(uploaderSvc, deleterSvc, strg, resolver)
	r.With(cMiddleware.WithAssetRef()).
		Put("/assets/{category}/{file}", api.ReplaceAssetHandler(replacerSvc))

	getterSvc := assetSvc.NewAssetGetter(strg, resolver, drv.Widths(), cfg.CacheTTL)
	rendererSvc := renderer.NewHTTPRenderer(ca)
	r.With(cMiddleware.WithAssetRef()).
		Get("/assets/{category}/{file}", api.GetAssetHandler(rendererSvc, getterSvc))

	// The public URLs the resolver hands out mirror the upload root 1:1.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadRoot))))

	listenRouter(ctx, r, cfg)
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(cfg.UploadRoot)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise upload root %q: %v", cfg.UploadRoot, err)
		os.Exit(1)
	}
	return strg
}

func initResolver(ctx context.Context, cfg *config.Settings) *storagepath.Resolver {
	resolver, err := storagepath.NewResolver(cfg.PublicBaseURL)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise path resolver: %v", err)
		os.Exit(1)
	}
	return resolver
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")
}
