package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
)

var (
	// ErrInvalidCostThreshold は料金の上限が正でない場合のエラー
	ErrInvalidCostThreshold = errors.New("料金の上限は1以上である必要があります")
	// ErrInvalidDate は日付・日時の入力形式が正しくない場合のエラー
	ErrInvalidDate = errors.New("日付・日時の形式が正しくありません")
)

// QueryService は読み取り専用の照会を扱う
type QueryService struct {
	capacity     *CapacityResolver
	cruises      cruise.Repository
	ships        ship.Repository
	reservations reservation.Repository
}

func NewQueryService(capacity *CapacityResolver, cr cruise.Repository, sr ship.Repository, rr reservation.Repository) *QueryService {
	return &QueryService{capacity: capacity, cruises: cr, ships: sr, reservations: rr}
}

// AvailableSeatsOn は指定日に運航するクルーズの空席数を返す
func (s *QueryService) AvailableSeatsOn(ctx context.Context, cruiseID int64, date time.Time) (int, error) {
	if cruiseID < 0 {
		return 0, reservation.ErrInvalidCruiseID
	}
	return s.capacity.AvailableSeatsOn(ctx, cruiseID, date)
}

// RepairsPerShip は修理件数の多い順に船舶ごとの件数を返す
func (s *QueryService) RepairsPerShip(ctx context.Context) ([]ship.RepairCount, error) {
	return s.ships.RepairCounts(ctx)
}

// CountPassengers はクルーズ内で指定状態にある予約の数を返す
func (s *QueryService) CountPassengers(ctx context.Context, cruiseID int64, status reservation.Status) (int, error) {
	if cruiseID < 0 {
		return 0, reservation.ErrInvalidCruiseID
	}
	if _, err := reservation.ParseStatus(string(status)); err != nil {
		return 0, err
	}
	if _, err := s.cruises.GetByNumber(ctx, cruiseID); err != nil {
		return 0, err
	}
	n, err := s.reservations.CountByStatus(ctx, cruiseID, status)
	if err != nil {
		return 0, fmt.Errorf("乗客数の集計に失敗: %w", err)
	}
	return n, nil
}

// CruisesUnderCost は料金が maxCost 未満のクルーズを出航日時とともに返す
func (s *QueryService) CruisesUnderCost(ctx context.Context, maxCost int) ([]cruise.Listing, error) {
	if maxCost < 1 {
		return nil, ErrInvalidCostThreshold
	}
	return s.cruises.ListUnderCost(ctx, maxCost)
}
