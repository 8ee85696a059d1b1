package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

// CapacityResolver はクルーズの空席数を求める
type CapacityResolver struct {
	cruises cruise.Repository
	cache   CapacityCache
}

func NewCapacityResolver(cruises cruise.Repository) *CapacityResolver {
	return &CapacityResolver{cruises: cruises}
}

// WithCache は空席照会用のキャッシュを設定する
func (r *CapacityResolver) WithCache(cache CapacityCache) *CapacityResolver {
	r.cache = cache
	return r
}

// Resolve は呼び出し元のトランザクション内でクルーズ行をロックし、空席計算の入力を返す
func (r *CapacityResolver) Resolve(ctx context.Context, tx transaction.Tx, cruiseID int64) (*cruise.CapacityInputs, error) {
	in, err := r.cruises.GetCapacityInputs(ctx, tx, cruiseID, true)
	if err != nil {
		return nil, fmt.Errorf("空席情報の取得に失敗: %w", err)
	}
	return in, nil
}

// AvailableSeats は割り当て船舶の座席数から販売済み数を引いた値を返す
func (r *CapacityResolver) AvailableSeats(ctx context.Context, tx transaction.Tx, cruiseID int64) (int, error) {
	in, err := r.Resolve(ctx, tx, cruiseID)
	if err != nil {
		return 0, err
	}
	return clampAvailable(in.Available()), nil
}

// AvailableSeatsOn は指定日に運航があるクルーズの空席数を返す（照会専用）
func (r *CapacityResolver) AvailableSeatsOn(ctx context.Context, cruiseID int64, date time.Time) (int, error) {
	load := func(ctx context.Context) (int, error) {
		in, err := r.cruises.CapacityOn(ctx, cruiseID, date)
		if err != nil {
			return 0, err
		}
		return clampAvailable(in.Available()), nil
	}
	if r.cache == nil {
		return load(ctx)
	}
	return r.cache.GetOrLoad(ctx, cruiseID, date, load)
}

// 座席数を減らした船舶に付け替えた場合に負になり得る
func clampAvailable(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Reserve は販売済み数を1増やす。座席数に達している場合は競合として返る
func (r *CapacityResolver) Reserve(ctx context.Context, tx transaction.Tx, in *cruise.CapacityInputs) error {
	if err := r.cruises.IncrementSold(ctx, tx, in.CruiseNumber, in.Seats); err != nil {
		return fmt.Errorf("販売済み数の更新に失敗: %w", err)
	}
	in.NumSold++
	return nil
}
