package handler

import (
	"context"
	"time"

	"github.com/sanosuguru/go-cruise-reservation/internal/application"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/repair"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
)

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	Book(ctx context.Context, customerID, cruiseID int64) (*application.BookingResult, error)
	PromoteCruise(ctx context.Context, cruiseID int64) (int, error)
}

// QueryServiceInterface は照会サービスのインターフェース
type QueryServiceInterface interface {
	AvailableSeatsOn(ctx context.Context, cruiseID int64, date time.Time) (int, error)
	RepairsPerShip(ctx context.Context) ([]ship.RepairCount, error)
	CountPassengers(ctx context.Context, cruiseID int64, status reservation.Status) (int, error)
	CruisesUnderCost(ctx context.Context, maxCost int) ([]cruise.Listing, error)
}

// FleetServiceInterface は登録サービスのインターフェース
type FleetServiceInterface interface {
	AddShip(ctx context.Context, s *ship.Ship) error
	AddCaptain(ctx context.Context, c *captain.Captain) error
	AddCruise(ctx context.Context, in application.AddCruiseInput) error
	AddSailing(ctx context.Context, s *cruise.Schedule) error
	AddCustomer(ctx context.Context, c *customer.Customer) (int64, error)
	AddRepair(ctx context.Context, r *repair.Repair) error
}

// Pinger はデータストアの疎通確認を行う
type Pinger interface {
	PingContext(ctx context.Context) error
}
