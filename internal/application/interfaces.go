package application

import (
	"context"
	"time"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
)

// CruiseLocker はクルーズ単位の排他を提供する
// 返された関数でロックを解放する
type CruiseLocker interface {
	Lock(ctx context.Context, cruiseID int64) (func(), error)
}

// CapacityCache は空席照会の結果をキャッシュする
type CapacityCache interface {
	GetOrLoad(ctx context.Context, cruiseID int64, date time.Time, load func(ctx context.Context) (int, error)) (int, error)
	Invalidate(ctx context.Context, cruiseID int64) error
}

// EventPublisher は予約イベントを外部へ通知する
type EventPublisher interface {
	Publish(ctx context.Context, ev reservation.Event) error
}
