package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/identifier"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/metrics"
)

// Outcome は予約リクエストの処理結果
type Outcome string

const (
	OutcomeConfirmed       Outcome = "confirmed"
	OutcomeWaitlisted      Outcome = "waitlisted"
	OutcomePromoted        Outcome = "promoted"
	OutcomeStillWaitlisted Outcome = "still_waitlisted"
	OutcomeAlreadyBooked   Outcome = "already_booked"
)

// ErrBookingFailed は競合の再試行を使い切った場合のエラー
var ErrBookingFailed = errors.New("競合が解消せず予約を完了できませんでした")

// BookingResult は予約リクエストの結果
type BookingResult struct {
	ReservationID int64
	CustomerID    int64
	CruiseID      int64
	Status        reservation.Status
	Outcome       Outcome
}

func newResult(r *reservation.Reservation, outcome Outcome) *BookingResult {
	return &BookingResult{
		ReservationID: r.RNum,
		CustomerID:    r.CustomerID,
		CruiseID:      r.CruiseID,
		Status:        r.Status,
		Outcome:       outcome,
	}
}

type BookingService struct {
	txManager    transaction.Manager
	capacity     *CapacityResolver
	reservations reservation.Repository
	customers    customer.Repository
	allocator    identifier.Allocator
	retry        RetryPolicy

	locker    CruiseLocker
	cache     CapacityCache
	publisher EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewBookingService(
	txm transaction.Manager,
	capacity *CapacityResolver,
	rr reservation.Repository,
	cr customer.Repository,
	alloc identifier.Allocator,
	retry RetryPolicy,
) *BookingService {
	return &BookingService{
		txManager:    txm,
		capacity:     capacity,
		reservations: rr,
		customers:    cr,
		allocator:    alloc,
		retry:        retry,
		now:          time.Now,
	}
}

// WithLocker はクルーズ単位の分散ロックを設定する
func (s *BookingService) WithLocker(l CruiseLocker) *BookingService {
	s.locker = l
	return s
}

// WithCache は予約確定時に無効化する空席キャッシュを設定する
func (s *BookingService) WithCache(c CapacityCache) *BookingService {
	s.cache = c
	return s
}

// WithPublisher はコミット後のイベント通知先を設定する
func (s *BookingService) WithPublisher(p EventPublisher) *BookingService {
	s.publisher = p
	return s
}

func (s *BookingService) WithMetrics(m *metrics.Metrics) *BookingService {
	s.metrics = m
	return s
}

// Book は顧客のクルーズ予約を確定・キャンセル待ち・繰り上げのいずれかに決定する
func (s *BookingService) Book(ctx context.Context, customerID, cruiseID int64) (*BookingResult, error) {
	if customerID < 0 {
		return nil, reservation.ErrInvalidCustomerID
	}
	if cruiseID < 0 {
		return nil, reservation.ErrInvalidCruiseID
	}

	start := time.Now()
	unlock := s.lock(ctx, cruiseID)
	defer unlock()

	var result *BookingResult
	err := withRetry(ctx, s.retry, s.countRetry, func() error {
		r, err := s.bookOnce(ctx, customerID, cruiseID)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	s.observeDuration(start)

	if err != nil {
		if errors.Is(err, transaction.ErrConflict) {
			s.countOutcome("failed")
			logger.Error("予約の競合が解消しませんでした",
				logger.CustomerID(customerID), logger.CruiseID(cruiseID), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
		}
		s.countOutcome(errorLabel(err))
		if errors.Is(err, transaction.ErrStoreUnavailable) {
			logger.Error("データストア障害により予約できません",
				logger.CustomerID(customerID), logger.CruiseID(cruiseID), zap.Error(err))
		}
		return nil, err
	}

	s.afterCommit(ctx, result)
	return result, nil
}

func (s *BookingService) bookOnce(ctx context.Context, customerID, cruiseID int64) (*BookingResult, error) {
	var result *BookingResult
	err := transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
		in, err := s.capacity.Resolve(ctx, tx, cruiseID)
		if err != nil {
			return err
		}

		ok, err := s.customers.Exists(ctx, tx, customerID)
		if err != nil {
			return fmt.Errorf("顧客の確認に失敗: %w", err)
		}
		if !ok {
			return customer.ErrCustomerNotFound
		}

		existing, err := s.reservations.Find(ctx, tx, customerID, cruiseID)
		switch {
		case err == nil:
			result, err = s.rebook(ctx, tx, existing, in)
		case errors.Is(err, reservation.ErrReservationNotFound):
			result, err = s.create(ctx, tx, customerID, in)
		default:
			err = fmt.Errorf("予約の検索に失敗: %w", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// rebook は既存の予約に対する再リクエストを処理する
func (s *BookingService) rebook(ctx context.Context, tx transaction.Tx, r *reservation.Reservation, in *cruise.CapacityInputs) (*BookingResult, error) {
	if r.Status != reservation.StatusWaitlist {
		return newResult(r, OutcomeAlreadyBooked), nil
	}
	if in.Available() <= 0 {
		return newResult(r, OutcomeStillWaitlisted), nil
	}
	if err := s.promote(ctx, tx, r, in); err != nil {
		return nil, err
	}
	return newResult(r, OutcomePromoted), nil
}

func (s *BookingService) create(ctx context.Context, tx transaction.Tx, customerID int64, in *cruise.CapacityInputs) (*BookingResult, error) {
	rnum, err := s.allocator.Next(ctx, tx, identifier.Reservation)
	if err != nil {
		return nil, fmt.Errorf("予約番号の採番に失敗: %w", err)
	}

	r := reservation.NewReservation(rnum, customerID, in.CruiseNumber, in.Available())
	if err := s.reservations.Create(ctx, tx, r); err != nil {
		return nil, fmt.Errorf("予約の作成に失敗: %w", err)
	}
	if r.Status != reservation.StatusReserved {
		return newResult(r, OutcomeWaitlisted), nil
	}
	if err := s.capacity.Reserve(ctx, tx, in); err != nil {
		return nil, err
	}
	return newResult(r, OutcomeConfirmed), nil
}

func (s *BookingService) promote(ctx context.Context, tx transaction.Tx, r *reservation.Reservation, in *cruise.CapacityInputs) error {
	if err := r.Promote(); err != nil {
		return err
	}
	if err := s.reservations.UpdateStatus(ctx, tx, r.RNum, reservation.StatusWaitlist, reservation.StatusConfirmed); err != nil {
		return fmt.Errorf("予約ステータスの更新に失敗: %w", err)
	}
	return s.capacity.Reserve(ctx, tx, in)
}

// PromoteWaitlisted は空席とキャンセル待ちの両方があるクルーズについて、
// 予約番号の古い順に空席の数だけキャンセル待ちを確定にする
func (s *BookingService) PromoteWaitlisted(ctx context.Context) (int, error) {
	cruiseIDs, err := s.reservations.CruisesWithPromotableWaitlist(ctx)
	if err != nil {
		return 0, fmt.Errorf("繰り上げ対象クルーズの取得に失敗: %w", err)
	}

	total := 0
	var errs []error
	for _, id := range cruiseIDs {
		n, err := s.PromoteCruise(ctx, id)
		total += n
		if err != nil {
			if ctx.Err() != nil {
				return total, ctx.Err()
			}
			logger.Error("キャンセル待ちの繰り上げに失敗しました", logger.CruiseID(id), zap.Error(err))
			errs = append(errs, fmt.Errorf("クルーズ %d: %w", id, err))
		}
	}
	return total, errors.Join(errs...)
}

// PromoteCruise はひとつのクルーズのキャンセル待ちを空席の数だけ確定にする
func (s *BookingService) PromoteCruise(ctx context.Context, cruiseID int64) (int, error) {
	unlock := s.lock(ctx, cruiseID)
	defer unlock()

	var promoted []*reservation.Reservation
	err := withRetry(ctx, s.retry, s.countRetry, func() error {
		promoted = nil
		return transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
			in, err := s.capacity.Resolve(ctx, tx, cruiseID)
			if err != nil {
				return err
			}
			free := in.Available()
			if free <= 0 {
				return nil
			}
			waiting, err := s.reservations.ListWaitlisted(ctx, tx, cruiseID, free)
			if err != nil {
				return fmt.Errorf("キャンセル待ちの取得に失敗: %w", err)
			}
			for _, r := range waiting {
				if err := s.promote(ctx, tx, r, in); err != nil {
					return err
				}
				promoted = append(promoted, r)
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, transaction.ErrConflict) {
			return 0, fmt.Errorf("%w: %v", ErrBookingFailed, err)
		}
		return 0, err
	}

	for _, r := range promoted {
		s.afterCommit(ctx, newResult(r, OutcomePromoted))
	}
	return len(promoted), nil
}

// afterCommit はコミット後の通知・計測・ログを行う。ここでの失敗は予約結果に影響しない
func (s *BookingService) afterCommit(ctx context.Context, res *BookingResult) {
	s.countOutcome(string(res.Outcome))
	if s.metrics != nil {
		switch res.Outcome {
		case OutcomeConfirmed, OutcomeWaitlisted:
			s.metrics.IDAllocationsTotal.WithLabelValues(string(identifier.Reservation)).Inc()
		case OutcomePromoted:
			s.metrics.WaitlistPromotionsTotal.Inc()
		}
	}

	if s.cache != nil && (res.Outcome == OutcomeConfirmed || res.Outcome == OutcomePromoted) {
		if err := s.cache.Invalidate(ctx, res.CruiseID); err != nil {
			logger.Warn("空席キャッシュの無効化に失敗しました", logger.CruiseID(res.CruiseID), zap.Error(err))
		}
	}

	if evType, ok := eventTypeFor(res.Outcome); ok && s.publisher != nil {
		r := &reservation.Reservation{RNum: res.ReservationID, CustomerID: res.CustomerID, CruiseID: res.CruiseID, Status: res.Status}
		ev := reservation.NewEvent(uuid.New().String(), evType, r, s.now())
		if err := s.publisher.Publish(ctx, ev); err != nil {
			logger.Warn("予約イベントの送信に失敗しました", logger.ReservationID(res.ReservationID), zap.Error(err))
		}
	}

	logger.Info("予約を処理しました",
		logger.CustomerID(res.CustomerID),
		logger.CruiseID(res.CruiseID),
		logger.ReservationID(res.ReservationID),
		zap.String("status", string(res.Status)),
		zap.String("outcome", string(res.Outcome)),
	)
}

func (s *BookingService) lock(ctx context.Context, cruiseID int64) func() {
	if s.locker == nil {
		return func() {}
	}
	unlock, err := s.locker.Lock(ctx, cruiseID)
	if err != nil {
		logger.Warn("分散ロックを取得できないためロックなしで続行します", logger.CruiseID(cruiseID), zap.Error(err))
		return func() {}
	}
	return unlock
}

func (s *BookingService) countRetry(int, error) {
	if s.metrics != nil {
		s.metrics.BookingConflictRetries.Inc()
	}
}

func (s *BookingService) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *BookingService) observeDuration(start time.Time) {
	if s.metrics != nil {
		s.metrics.BookingDuration.Observe(time.Since(start).Seconds())
	}
}

func eventTypeFor(o Outcome) (reservation.EventType, bool) {
	switch o {
	case OutcomeConfirmed:
		return reservation.EventConfirmed, true
	case OutcomeWaitlisted:
		return reservation.EventWaitlisted, true
	case OutcomePromoted:
		return reservation.EventPromoted, true
	default:
		return "", false
	}
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, cruise.ErrCruiseNotFound), errors.Is(err, customer.ErrCustomerNotFound):
		return "not_found"
	default:
		return "error"
	}
}
