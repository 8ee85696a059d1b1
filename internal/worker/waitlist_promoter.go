package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
)

// WaitlistPromoter はキャンセル待ちを繰り上げるインターフェース
type WaitlistPromoter interface {
	PromoteWaitlisted(ctx context.Context) (int, error)
}

// PromotionWorker は空席が生じたクルーズのキャンセル待ちを定期的に確定へ繰り上げるワーカー
type PromotionWorker struct {
	promoter WaitlistPromoter
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewPromotionWorker は新しいワーカーを作成
func NewPromotionWorker(p WaitlistPromoter, interval time.Duration) *PromotionWorker {
	return &PromotionWorker{
		promoter: p,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はワーカーを開始する（呼び出し元をブロックする）
func (w *PromotionWorker) Start(ctx context.Context) {
	logger.Info("キャンセル待ち繰り上げワーカー開始", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("キャンセル待ち繰り上げワーカー停止（コンテキストキャンセル）")
			return
		case <-w.stopCh:
			logger.Info("キャンセル待ち繰り上げワーカー停止（シグナル受信）")
			return
		case <-ticker.C:
			w.promote(ctx)
		}
	}
}

// Stop はワーカーを停止し、実行中の処理が終わるまで待つ
func (w *PromotionWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *PromotionWorker) promote(ctx context.Context) {
	log := logger.Get()

	count, err := w.promoter.PromoteWaitlisted(ctx)
	if err != nil {
		// 一部のクルーズが失敗しても、繰り上げ済みの件数は記録する
		log.Error("キャンセル待ちの繰り上げに失敗", zap.Int("promoted", count), zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("キャンセル待ちを繰り上げ", zap.Int("count", count))
	} else {
		log.Debug("繰り上げ対象なし")
	}
}
