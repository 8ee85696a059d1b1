package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
)

// RetryPolicy は競合時の再試行方針
// MaxRetries は初回の後に行う再試行の回数
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// DefaultRetryPolicy は設定がない場合の再試行方針
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, Backoff: 50 * time.Millisecond}

// withRetry は fn が transaction.ErrConflict を返す間、線形に待ちながら再試行する
// それ以外のエラーは即座に返す。再試行を使い切った場合は最後の競合エラーを返す
func withRetry(ctx context.Context, p RetryPolicy, onRetry func(attempt int, err error), fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, transaction.ErrConflict) {
			return err
		}
		if attempt >= p.MaxRetries {
			return err
		}
		if onRetry != nil {
			onRetry(attempt+1, err)
		}
		logger.Warn("トランザクション競合のため再試行します", zap.Int("attempt", attempt+1), zap.Error(err))

		wait := p.Backoff * time.Duration(attempt+1)
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
