package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/api"
	"github.com/sanosuguru/go-cruise-reservation/internal/api/handler"
	"github.com/sanosuguru/go-cruise-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-cruise-reservation/internal/app"
	"github.com/sanosuguru/go-cruise-reservation/internal/config"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/metrics"
	"github.com/sanosuguru/go-cruise-reservation/internal/worker"
)

func main() {
	cfg := config.Load()
	logger.Set(logger.NewLogger(cfg.Log.Env))
	defer logger.Sync()

	m := metrics.Init()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := app.New(ctx, cfg, m)
	cancel()
	if err != nil {
		logger.Error("初期化に失敗しました", zap.Error(err))
		if errors.Is(err, transaction.ErrStoreUnavailable) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	// Echo インスタンス作成
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e, m)

	handler.RegisterRoutes(e, handler.Handlers{
		Health:  handler.NewHealthHandler(c.DB),
		Booking: handler.NewBookingHandler(c.Booking),
		Query:   handler.NewQueryHandler(c.Query),
		Fleet:   handler.NewFleetHandler(c.Fleet),
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth(cfg.Metrics))

	// キャンセル待ち繰り上げワーカー
	var promoter *worker.PromotionWorker
	if cfg.Promoter.Interval > 0 {
		promoter = worker.NewPromotionWorker(c.Booking, cfg.Promoter.Interval)
		go promoter.Start(context.Background())
	}

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Graceful shutdown
	go func() {
		logger.Info("サーバーを起動します",
			zap.String("port", cfg.Server.Port),
			zap.String("driver", cfg.Database.Driver),
		)
		if err := e.Start(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
	}
	if promoter != nil {
		promoter.Stop()
	}
	if err := c.Close(); err != nil {
		logger.Error("接続のクローズに失敗しました", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
