package application

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/identifier"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/metrics"
)

type bookingMocks struct {
	txm          *MockTxManager
	tx           *MockTx
	cruises      *MockCruiseRepository
	reservations *MockReservationRepository
	customers    *MockCustomerRepository
	allocator    *MockAllocator
	metrics      *metrics.Metrics
}

func newBookingMocks() *bookingMocks {
	m := &bookingMocks{
		txm:          new(MockTxManager),
		tx:           new(MockTx),
		cruises:      new(MockCruiseRepository),
		reservations: new(MockReservationRepository),
		customers:    new(MockCustomerRepository),
		allocator:    new(MockAllocator),
		metrics:      metrics.Discard(),
	}
	m.txm.On("Begin", mock.Anything).Return(m.tx, nil).Maybe()
	m.tx.On("Rollback").Return(nil).Maybe()
	return m
}

func (m *bookingMocks) service() *BookingService {
	return NewBookingService(m.txm, NewCapacityResolver(m.cruises), m.reservations, m.customers, m.allocator,
		RetryPolicy{MaxRetries: 2}).WithMetrics(m.metrics)
}

func (m *bookingMocks) capacity(cruiseID int64, seats, sold int) *mock.Call {
	return m.cruises.On("GetCapacityInputs", mock.Anything, m.tx, cruiseID, true).
		Return(&cruise.CapacityInputs{CruiseNumber: cruiseID, ShipID: 1, Seats: seats, NumSold: sold}, nil)
}

func TestBookingService_Book(t *testing.T) {
	ctx := context.Background()

	t.Run("空席があれば新規予約は確定になる", func(t *testing.T) {
		m := newBookingMocks()
		m.capacity(10, 2, 0)
		m.customers.On("Exists", mock.Anything, m.tx, int64(1)).Return(true, nil)
		m.reservations.On("Find", mock.Anything, m.tx, int64(1), int64(10)).Return(nil, reservation.ErrReservationNotFound)
		m.allocator.On("Next", mock.Anything, m.tx, identifier.Reservation).Return(int64(100), nil)
		m.reservations.On("Create", mock.Anything, m.tx, mock.MatchedBy(func(r *reservation.Reservation) bool {
			return r.RNum == 100 && r.Status == reservation.StatusReserved
		})).Return(nil)
		m.cruises.On("IncrementSold", mock.Anything, m.tx, int64(10), 2).Return(nil)
		m.tx.On("Commit").Return(nil)

		res, err := m.service().Book(ctx, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(100), res.ReservationID)
		assert.Equal(t, reservation.StatusReserved, res.Status)
		assert.Equal(t, OutcomeConfirmed, res.Outcome)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.BookingsTotal.WithLabelValues("confirmed")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.IDAllocationsTotal.WithLabelValues("reservation")))
		m.cruises.AssertExpectations(t)
		m.reservations.AssertExpectations(t)
		m.tx.AssertExpectations(t)
	})

	t.Run("満席なら新規予約はキャンセル待ちになり販売済み数は変わらない", func(t *testing.T) {
		m := newBookingMocks()
		m.capacity(10, 2, 2)
		m.customers.On("Exists", mock.Anything, m.tx, int64(3)).Return(true, nil)
		m.reservations.On("Find", mock.Anything, m.tx, int64(3), int64(10)).Return(nil, reservation.ErrReservationNotFound)
		m.allocator.On("Next", mock.Anything, m.tx, identifier.Reservation).Return(int64(102), nil)
		m.reservations.On("Create", mock.Anything, m.tx, mock.MatchedBy(func(r *reservation.Reservation) bool {
			return r.Status == reservation.StatusWaitlist
		})).Return(nil)
		m.tx.On("Commit").Return(nil)

		res, err := m.service().Book(ctx, 3, 10)

		require.NoError(t, err)
		assert.Equal(t, reservation.StatusWaitlist, res.Status)
		assert.Equal(t, OutcomeWaitlisted, res.Outcome)
		m.cruises.AssertNotCalled(t, "IncrementSold", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("キャンセル待ちは空席ができると繰り上げ確定になる", func(t *testing.T) {
		m := newBookingMocks()
		m.capacity(10, 3, 2)
		m.customers.On("Exists", mock.Anything, m.tx, int64(3)).Return(true, nil)
		m.reservations.On("Find", mock.Anything, m.tx, int64(3), int64(10)).
			Return(&reservation.Reservation{RNum: 102, CustomerID: 3, CruiseID: 10, Status: reservation.StatusWaitlist}, nil)
		m.reservations.On("UpdateStatus", mock.Anything, m.tx, int64(102), reservation.StatusWaitlist, reservation.StatusConfirmed).Return(nil)
		m.cruises.On("IncrementSold", mock.Anything, m.tx, int64(10), 3).Return(nil)
		m.tx.On("Commit").Return(nil)

		res, err := m.service().Book(ctx, 3, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(102), res.ReservationID)
		assert.Equal(t, reservation.StatusConfirmed, res.Status)
		assert.Equal(t, OutcomePromoted, res.Outcome)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.WaitlistPromotionsTotal))
		m.allocator.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("空席がなければキャンセル待ちのまま返る", func(t *testing.T) {
		m := newBookingMocks()
		m.capacity(10, 2, 2)
		m.customers.On("Exists", mock.Anything, m.tx, int64(3)).Return(true, nil)
		m.reservations.On("Find", mock.Anything, m.tx, int64(3), int64(10)).
			Return(&reservation.Reservation{RNum: 102, CustomerID: 3, CruiseID: 10, Status: reservation.StatusWaitlist}, nil)
		m.tx.On("Commit").Return(nil)

		res, err := m.service().Book(ctx, 3, 10)

		require.NoError(t, err)
		assert.Equal(t, reservation.StatusWaitlist, res.Status)
		assert.Equal(t, OutcomeStillWaitlisted, res.Outcome)
		m.reservations.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("確定済みの予約は変更せずそのまま返る", func(t *testing.T) {
		for _, st := range []reservation.Status{reservation.StatusReserved, reservation.StatusConfirmed} {
			m := newBookingMocks()
			m.capacity(10, 2, 1)
			m.customers.On("Exists", mock.Anything, m.tx, int64(1)).Return(true, nil)
			m.reservations.On("Find", mock.Anything, m.tx, int64(1), int64(10)).
				Return(&reservation.Reservation{RNum: 100, CustomerID: 1, CruiseID: 10, Status: st}, nil)
			m.tx.On("Commit").Return(nil)

			res, err := m.service().Book(ctx, 1, 10)

			require.NoError(t, err)
			assert.Equal(t, st, res.Status)
			assert.Equal(t, OutcomeAlreadyBooked, res.Outcome)
			m.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			m.cruises.AssertNotCalled(t, "IncrementSold", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("存在しないクルーズはNotFoundで何も作成しない", func(t *testing.T) {
		m := newBookingMocks()
		m.cruises.On("GetCapacityInputs", mock.Anything, m.tx, int64(99), true).Return(nil, cruise.ErrCruiseNotFound)

		res, err := m.service().Book(ctx, 1, 99)

		assert.Nil(t, res)
		assert.ErrorIs(t, err, cruise.ErrCruiseNotFound)
		m.tx.AssertCalled(t, "Rollback")
		m.tx.AssertNotCalled(t, "Commit")
		m.allocator.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.BookingsTotal.WithLabelValues("not_found")))
	})

	t.Run("存在しない顧客はNotFound", func(t *testing.T) {
		m := newBookingMocks()
		m.capacity(10, 2, 0)
		m.customers.On("Exists", mock.Anything, m.tx, int64(42)).Return(false, nil)

		_, err := m.service().Book(ctx, 42, 10)

		assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
		m.reservations.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("負のIDは検証エラーでトランザクションを開始しない", func(t *testing.T) {
		m := newBookingMocks()
		_, err := m.service().Book(ctx, -1, 10)
		assert.ErrorIs(t, err, reservation.ErrInvalidCustomerID)
		_, err = m.service().Book(ctx, 1, -10)
		assert.ErrorIs(t, err, reservation.ErrInvalidCruiseID)
		m.txm.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("競合は再試行され2回目で確定する", func(t *testing.T) {
		m := newBookingMocks()
		m.capacity(10, 2, 1)
		m.customers.On("Exists", mock.Anything, m.tx, int64(1)).Return(true, nil)
		m.reservations.On("Find", mock.Anything, m.tx, int64(1), int64(10)).Return(nil, reservation.ErrReservationNotFound)
		m.allocator.On("Next", mock.Anything, m.tx, identifier.Reservation).Return(int64(100), nil).Once()
		m.allocator.On("Next", mock.Anything, m.tx, identifier.Reservation).Return(int64(100), nil).Once()
		m.reservations.On("Create", mock.Anything, m.tx, mock.Anything).Return(nil)
		m.cruises.On("IncrementSold", mock.Anything, m.tx, int64(10), 2).
			Return(transaction.ErrConflict).Once()
		m.cruises.On("IncrementSold", mock.Anything, m.tx, int64(10), 2).Return(nil).Once()
		m.tx.On("Commit").Return(nil)

		res, err := m.service().Book(ctx, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, OutcomeConfirmed, res.Outcome)
		m.txm.AssertNumberOfCalls(t, "Begin", 2)
		m.tx.AssertNumberOfCalls(t, "Rollback", 1)
		m.tx.AssertNumberOfCalls(t, "Commit", 1)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.BookingConflictRetries))
	})

	t.Run("競合が続くと再試行上限でBookingFailedになる", func(t *testing.T) {
		m := newBookingMocks()
		m.cruises.On("GetCapacityInputs", mock.Anything, m.tx, int64(10), true).Return(nil, transaction.ErrConflict)

		_, err := m.service().Book(ctx, 1, 10)

		assert.ErrorIs(t, err, ErrBookingFailed)
		m.txm.AssertNumberOfCalls(t, "Begin", 3)
		assert.Equal(t, 2.0, testutil.ToFloat64(m.metrics.BookingConflictRetries))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.BookingsTotal.WithLabelValues("failed")))
	})

	t.Run("データストア障害は再試行せずそのまま返る", func(t *testing.T) {
		m := &bookingMocks{
			txm:          new(MockTxManager),
			cruises:      new(MockCruiseRepository),
			reservations: new(MockReservationRepository),
			customers:    new(MockCustomerRepository),
			allocator:    new(MockAllocator),
			metrics:      metrics.Discard(),
		}
		m.txm.On("Begin", mock.Anything).Return(nil, transaction.ErrStoreUnavailable)

		_, err := m.service().Book(ctx, 1, 10)

		assert.ErrorIs(t, err, transaction.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, ErrBookingFailed)
		m.txm.AssertNumberOfCalls(t, "Begin", 1)
	})
}

func TestBookingService_AfterCommit(t *testing.T) {
	ctx := context.Background()

	setup := func(m *bookingMocks) {
		m.capacity(10, 2, 0)
		m.customers.On("Exists", mock.Anything, m.tx, int64(1)).Return(true, nil)
		m.reservations.On("Find", mock.Anything, m.tx, int64(1), int64(10)).Return(nil, reservation.ErrReservationNotFound)
		m.allocator.On("Next", mock.Anything, m.tx, identifier.Reservation).Return(int64(100), nil)
		m.reservations.On("Create", mock.Anything, m.tx, mock.Anything).Return(nil)
		m.cruises.On("IncrementSold", mock.Anything, m.tx, int64(10), 2).Return(nil)
		m.tx.On("Commit").Return(nil)
	}

	t.Run("確定時にイベントを送信し空席キャッシュを無効化する", func(t *testing.T) {
		m := newBookingMocks()
		setup(m)
		pub := new(MockPublisher)
		pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev reservation.Event) bool {
			return ev.Type == reservation.EventConfirmed && ev.ReservationID == 100 &&
				ev.CustomerID == 1 && ev.CruiseID == 10 && ev.ID != ""
		})).Return(nil)
		cache := new(MockCapacityCache)
		cache.On("Invalidate", mock.Anything, int64(10)).Return(nil)

		_, err := m.service().WithPublisher(pub).WithCache(cache).Book(ctx, 1, 10)

		require.NoError(t, err)
		pub.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("イベント送信やキャッシュの失敗は予約結果に影響しない", func(t *testing.T) {
		m := newBookingMocks()
		setup(m)
		pub := new(MockPublisher)
		pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
		cache := new(MockCapacityCache)
		cache.On("Invalidate", mock.Anything, int64(10)).Return(errors.New("redis down"))

		res, err := m.service().WithPublisher(pub).WithCache(cache).Book(ctx, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, OutcomeConfirmed, res.Outcome)
	})

	t.Run("分散ロックを取得できなくても予約は続行する", func(t *testing.T) {
		m := newBookingMocks()
		setup(m)
		locker := new(MockLocker)
		locker.On("Lock", mock.Anything, int64(10)).Return(nil, errors.New("lock unavailable"))

		res, err := m.service().WithLocker(locker).Book(ctx, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, OutcomeConfirmed, res.Outcome)
	})

	t.Run("取得したロックは処理後に解放される", func(t *testing.T) {
		m := newBookingMocks()
		setup(m)
		released := false
		locker := new(MockLocker)
		locker.On("Lock", mock.Anything, int64(10)).Return(func() { released = true }, nil)

		_, err := m.service().WithLocker(locker).Book(ctx, 1, 10)

		require.NoError(t, err)
		assert.True(t, released)
	})
}

func TestBookingService_PromoteWaitlisted(t *testing.T) {
	ctx := context.Background()

	t.Run("空席の数だけ予約番号順に繰り上げる", func(t *testing.T) {
		m := newBookingMocks()
		m.reservations.On("CruisesWithPromotableWaitlist", mock.Anything).Return([]int64{10}, nil)
		m.capacity(10, 3, 1)
		m.reservations.On("ListWaitlisted", mock.Anything, m.tx, int64(10), 2).Return([]*reservation.Reservation{
			{RNum: 5, CustomerID: 2, CruiseID: 10, Status: reservation.StatusWaitlist},
			{RNum: 7, CustomerID: 4, CruiseID: 10, Status: reservation.StatusWaitlist},
		}, nil)
		m.reservations.On("UpdateStatus", mock.Anything, m.tx, int64(5), reservation.StatusWaitlist, reservation.StatusConfirmed).Return(nil)
		m.reservations.On("UpdateStatus", mock.Anything, m.tx, int64(7), reservation.StatusWaitlist, reservation.StatusConfirmed).Return(nil)
		m.cruises.On("IncrementSold", mock.Anything, m.tx, int64(10), 3).Return(nil).Times(2)
		m.tx.On("Commit").Return(nil)

		n, err := m.service().PromoteWaitlisted(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 2.0, testutil.ToFloat64(m.metrics.WaitlistPromotionsTotal))
		m.reservations.AssertExpectations(t)
	})

	t.Run("空席がなくなっていれば何もしない", func(t *testing.T) {
		m := newBookingMocks()
		m.reservations.On("CruisesWithPromotableWaitlist", mock.Anything).Return([]int64{10}, nil)
		m.capacity(10, 2, 2)
		m.tx.On("Commit").Return(nil)

		n, err := m.service().PromoteWaitlisted(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		m.reservations.AssertNotCalled(t, "ListWaitlisted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("クルーズ単位の失敗は他のクルーズの処理を止めない", func(t *testing.T) {
		m := newBookingMocks()
		m.reservations.On("CruisesWithPromotableWaitlist", mock.Anything).Return([]int64{10, 11}, nil)
		m.cruises.On("GetCapacityInputs", mock.Anything, m.tx, int64(10), true).Return(nil, transaction.ErrStoreUnavailable)
		m.capacity(11, 1, 0)
		m.reservations.On("ListWaitlisted", mock.Anything, m.tx, int64(11), 1).Return([]*reservation.Reservation{
			{RNum: 9, CustomerID: 2, CruiseID: 11, Status: reservation.StatusWaitlist},
		}, nil)
		m.reservations.On("UpdateStatus", mock.Anything, m.tx, int64(9), reservation.StatusWaitlist, reservation.StatusConfirmed).Return(nil)
		m.cruises.On("IncrementSold", mock.Anything, m.tx, int64(11), 1).Return(nil)
		m.tx.On("Commit").Return(nil)

		n, err := m.service().PromoteWaitlisted(ctx)

		assert.Equal(t, 1, n)
		assert.ErrorIs(t, err, transaction.ErrStoreUnavailable)
	})
}
