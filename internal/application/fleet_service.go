package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/identifier"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/repair"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/metrics"
)

// FleetService は船舶・船長・クルーズ・顧客・修理記録の登録を扱う
type FleetService struct {
	txManager transaction.Manager
	ships     ship.Repository
	captains  captain.Repository
	cruises   cruise.Repository
	customers customer.Repository
	repairs   repair.Repository
	allocator identifier.Allocator
	retry     RetryPolicy
	metrics   *metrics.Metrics
}

func NewFleetService(
	txm transaction.Manager,
	sr ship.Repository,
	capr captain.Repository,
	cr cruise.Repository,
	custr customer.Repository,
	rr repair.Repository,
	alloc identifier.Allocator,
	retry RetryPolicy,
) *FleetService {
	return &FleetService{
		txManager: txm,
		ships:     sr,
		captains:  capr,
		cruises:   cr,
		customers: custr,
		repairs:   rr,
		allocator: alloc,
		retry:     retry,
	}
}

func (s *FleetService) WithMetrics(m *metrics.Metrics) *FleetService {
	s.metrics = m
	return s
}

func (s *FleetService) AddShip(ctx context.Context, sh *ship.Ship) error {
	if err := sh.Validate(); err != nil {
		return err
	}
	if err := s.ships.Create(ctx, sh); err != nil {
		return err
	}
	logger.Info("船舶を登録しました", zap.Int64("ship_id", sh.ID))
	return nil
}

func (s *FleetService) AddCaptain(ctx context.Context, c *captain.Captain) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.captains.Create(ctx, c); err != nil {
		return err
	}
	logger.Info("船長を登録しました", zap.Int64("captain_id", c.ID))
	return nil
}

// AddCruiseInput はクルーズ登録の入力
type AddCruiseInput struct {
	Cruise    *cruise.Cruise
	ShipID    int64
	CaptainID int64
}

// AddCruise はクルーズ・船舶と船長の割り当て・最初の運航スケジュールを1つのトランザクションで登録する
func (s *FleetService) AddCruise(ctx context.Context, in AddCruiseInput) error {
	c := in.Cruise
	if err := c.Validate(); err != nil {
		return err
	}
	if err := ship.ValidateID(in.ShipID); err != nil {
		return err
	}
	if err := captain.ValidateID(in.CaptainID); err != nil {
		return err
	}
	if _, err := s.ships.GetByID(ctx, in.ShipID); err != nil {
		return err
	}
	if _, err := s.captains.GetByID(ctx, in.CaptainID); err != nil {
		return err
	}

	err := transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
		if err := s.cruises.Create(ctx, tx, c); err != nil {
			return err
		}
		if err := s.cruises.Assign(ctx, tx, &cruise.Assignment{
			CruiseNumber: c.Number,
			ShipID:       in.ShipID,
			CaptainID:    in.CaptainID,
		}); err != nil {
			return err
		}
		return s.cruises.AddSchedule(ctx, tx, &cruise.Schedule{
			CruiseNumber:  c.Number,
			DepartureTime: c.DepartureAt,
			ArrivalTime:   c.ArrivalAt,
		})
	})
	if err != nil {
		return err
	}
	logger.Info("クルーズを登録しました", logger.CruiseID(c.Number),
		zap.Int64("ship_id", in.ShipID), zap.Int64("captain_id", in.CaptainID))
	return nil
}

// AddSailing は既存クルーズに運航日を追加する
func (s *FleetService) AddSailing(ctx context.Context, sc *cruise.Schedule) error {
	if err := cruise.ValidateSchedule(sc.DepartureTime, sc.ArrivalTime); err != nil {
		return err
	}
	if _, err := s.cruises.GetByNumber(ctx, sc.CruiseNumber); err != nil {
		return err
	}
	return transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
		return s.cruises.AddSchedule(ctx, tx, sc)
	})
}

// AddCustomer は顧客IDを採番して顧客を登録し、採番したIDを返す
func (s *FleetService) AddCustomer(ctx context.Context, c *customer.Customer) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	err := withRetry(ctx, s.retry, nil, func() error {
		return transaction.Run(ctx, s.txManager, func(tx transaction.Tx) error {
			id, err := s.allocator.Next(ctx, tx, identifier.Customer)
			if err != nil {
				return fmt.Errorf("顧客IDの採番に失敗: %w", err)
			}
			c.ID = id
			return s.customers.Create(ctx, tx, c)
		})
	})
	if err != nil {
		c.ID = 0
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.IDAllocationsTotal.WithLabelValues(string(identifier.Customer)).Inc()
	}
	logger.Info("顧客を登録しました", logger.CustomerID(c.ID))
	return c.ID, nil
}

// AddRepair は船舶と船長の存在を確認して修理記録を登録する
func (s *FleetService) AddRepair(ctx context.Context, r *repair.Repair) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, err := s.ships.GetByID(ctx, r.ShipID); err != nil {
		if errors.Is(err, ship.ErrShipNotFound) {
			return repair.ErrUnknownShip
		}
		return err
	}
	if _, err := s.captains.GetByID(ctx, r.CaptainID); err != nil {
		if errors.Is(err, captain.ErrCaptainNotFound) {
			return repair.ErrUnknownCaptain
		}
		return err
	}
	if err := s.repairs.Create(ctx, r); err != nil {
		return err
	}
	logger.Info("修理記録を登録しました", zap.Int64("repair_id", r.ID), zap.Int64("ship_id", r.ShipID))
	return nil
}
