package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/identifier"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/repair"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

// === Mock implementations ===

// MockTxManager implements transaction.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// MockTx implements transaction.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockCruiseRepository implements cruise.Repository
type MockCruiseRepository struct {
	mock.Mock
}

func (m *MockCruiseRepository) Create(ctx context.Context, tx transaction.Tx, c *cruise.Cruise) error {
	args := m.Called(ctx, tx, c)
	return args.Error(0)
}

func (m *MockCruiseRepository) Assign(ctx context.Context, tx transaction.Tx, a *cruise.Assignment) error {
	args := m.Called(ctx, tx, a)
	return args.Error(0)
}

func (m *MockCruiseRepository) AddSchedule(ctx context.Context, tx transaction.Tx, s *cruise.Schedule) error {
	args := m.Called(ctx, tx, s)
	return args.Error(0)
}

func (m *MockCruiseRepository) GetByNumber(ctx context.Context, number int64) (*cruise.Cruise, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cruise.Cruise), args.Error(1)
}

func (m *MockCruiseRepository) GetCapacityInputs(ctx context.Context, tx transaction.Tx, number int64, lock bool) (*cruise.CapacityInputs, error) {
	args := m.Called(ctx, tx, number, lock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// 呼び出しごとに別の値を返し、サービス側の変更がモックに残らないようにする
	in := *args.Get(0).(*cruise.CapacityInputs)
	return &in, args.Error(1)
}

func (m *MockCruiseRepository) IncrementSold(ctx context.Context, tx transaction.Tx, number int64, seats int) error {
	args := m.Called(ctx, tx, number, seats)
	return args.Error(0)
}

func (m *MockCruiseRepository) CapacityOn(ctx context.Context, number int64, date time.Time) (*cruise.CapacityInputs, error) {
	args := m.Called(ctx, number, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cruise.CapacityInputs), args.Error(1)
}

func (m *MockCruiseRepository) ListUnderCost(ctx context.Context, maxCost int) ([]cruise.Listing, error) {
	args := m.Called(ctx, maxCost)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cruise.Listing), args.Error(1)
}

// MockReservationRepository implements reservation.Repository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Find(ctx context.Context, tx transaction.Tx, customerID, cruiseID int64) (*reservation.Reservation, error) {
	args := m.Called(ctx, tx, customerID, cruiseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	r := *args.Get(0).(*reservation.Reservation)
	return &r, args.Error(1)
}

func (m *MockReservationRepository) Create(ctx context.Context, tx transaction.Tx, r *reservation.Reservation) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, rnum int64, from, to reservation.Status) error {
	args := m.Called(ctx, tx, rnum, from, to)
	return args.Error(0)
}

func (m *MockReservationRepository) ListWaitlisted(ctx context.Context, tx transaction.Tx, cruiseID int64, limit int) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, tx, cruiseID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) CountByStatus(ctx context.Context, cruiseID int64, status reservation.Status) (int, error) {
	args := m.Called(ctx, cruiseID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockReservationRepository) CruisesWithPromotableWaitlist(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockCustomerRepository implements customer.Repository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, tx transaction.Tx, c *customer.Customer) error {
	args := m.Called(ctx, tx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Exists(ctx context.Context, tx transaction.Tx, id int64) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

// MockShipRepository implements ship.Repository
type MockShipRepository struct {
	mock.Mock
}

func (m *MockShipRepository) Create(ctx context.Context, s *ship.Ship) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipRepository) GetByID(ctx context.Context, id int64) (*ship.Ship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ship.Ship), args.Error(1)
}

func (m *MockShipRepository) RepairCounts(ctx context.Context) ([]ship.RepairCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ship.RepairCount), args.Error(1)
}

// MockCaptainRepository implements captain.Repository
type MockCaptainRepository struct {
	mock.Mock
}

func (m *MockCaptainRepository) Create(ctx context.Context, c *captain.Captain) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaptainRepository) GetByID(ctx context.Context, id int64) (*captain.Captain, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captain.Captain), args.Error(1)
}

// MockRepairRepository implements repair.Repository
type MockRepairRepository struct {
	mock.Mock
}

func (m *MockRepairRepository) Create(ctx context.Context, r *repair.Repair) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockAllocator implements identifier.Allocator
type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Next(ctx context.Context, tx transaction.Tx, entity identifier.Entity) (int64, error) {
	args := m.Called(ctx, tx, entity)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher implements EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev reservation.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// MockCapacityCache implements CapacityCache
type MockCapacityCache struct {
	mock.Mock
}

func (m *MockCapacityCache) GetOrLoad(ctx context.Context, cruiseID int64, date time.Time, load func(ctx context.Context) (int, error)) (int, error) {
	args := m.Called(ctx, cruiseID, date, load)
	return args.Int(0), args.Error(1)
}

func (m *MockCapacityCache) Invalidate(ctx context.Context, cruiseID int64) error {
	args := m.Called(ctx, cruiseID)
	return args.Error(0)
}

// MockLocker implements CruiseLocker
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Lock(ctx context.Context, cruiseID int64) (func(), error) {
	args := m.Called(ctx, cruiseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

var (
	_ transaction.Manager    = (*MockTxManager)(nil)
	_ cruise.Repository      = (*MockCruiseRepository)(nil)
	_ reservation.Repository = (*MockReservationRepository)(nil)
	_ customer.Repository    = (*MockCustomerRepository)(nil)
	_ ship.Repository        = (*MockShipRepository)(nil)
	_ captain.Repository     = (*MockCaptainRepository)(nil)
	_ repair.Repository      = (*MockRepairRepository)(nil)
	_ identifier.Allocator   = (*MockAllocator)(nil)
)
