package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-cruise-reservation/internal/application"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/repair"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
)

// MockBookingService はBookingServiceInterfaceのモック
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Book(ctx context.Context, customerID, cruiseID int64) (*application.BookingResult, error) {
	args := m.Called(ctx, customerID, cruiseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.BookingResult), args.Error(1)
}

func (m *MockBookingService) PromoteCruise(ctx context.Context, cruiseID int64) (int, error) {
	args := m.Called(ctx, cruiseID)
	return args.Int(0), args.Error(1)
}

// MockQueryService はQueryServiceInterfaceのモック
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) AvailableSeatsOn(ctx context.Context, cruiseID int64, date time.Time) (int, error) {
	args := m.Called(ctx, cruiseID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockQueryService) RepairsPerShip(ctx context.Context) ([]ship.RepairCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ship.RepairCount), args.Error(1)
}

func (m *MockQueryService) CountPassengers(ctx context.Context, cruiseID int64, status reservation.Status) (int, error) {
	args := m.Called(ctx, cruiseID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockQueryService) CruisesUnderCost(ctx context.Context, maxCost int) ([]cruise.Listing, error) {
	args := m.Called(ctx, maxCost)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cruise.Listing), args.Error(1)
}

// MockFleetService はFleetServiceInterfaceのモック
type MockFleetService struct {
	mock.Mock
}

func (m *MockFleetService) AddShip(ctx context.Context, s *ship.Ship) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockFleetService) AddCaptain(ctx context.Context, c *captain.Captain) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockFleetService) AddCruise(ctx context.Context, in application.AddCruiseInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockFleetService) AddSailing(ctx context.Context, s *cruise.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockFleetService) AddCustomer(ctx context.Context, c *customer.Customer) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFleetService) AddRepair(ctx context.Context, r *repair.Repair) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockPinger はPingerのモック
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
