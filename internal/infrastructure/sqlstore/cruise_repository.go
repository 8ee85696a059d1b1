package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

type cruiseRow struct {
	Number        int64     `db:"cnum"`
	Cost          int       `db:"cost"`
	NumSold       int       `db:"num_sold"`
	NumStops      int       `db:"num_stops"`
	DepartureAt   time.Time `db:"actual_departure_date"`
	ArrivalAt     time.Time `db:"actual_arrival_date"`
	ArrivalPort   string    `db:"arrival_port"`
	DeparturePort string    `db:"departure_port"`
}

func (r *cruiseRow) toEntity() *cruise.Cruise {
	return &cruise.Cruise{
		Number: r.Number, Cost: r.Cost, NumSold: r.NumSold, NumStops: r.NumStops,
		DepartureAt: r.DepartureAt.UTC(), ArrivalAt: r.ArrivalAt.UTC(),
		DeparturePort: r.DeparturePort, ArrivalPort: r.ArrivalPort,
	}
}

type capacityRow struct {
	Number  int64 `db:"cnum"`
	ShipID  int64 `db:"ship_id"`
	Seats   int   `db:"seats"`
	NumSold int   `db:"num_sold"`
}

func (r *capacityRow) toEntity() *cruise.CapacityInputs {
	return &cruise.CapacityInputs{CruiseNumber: r.Number, ShipID: r.ShipID, Seats: r.Seats, NumSold: r.NumSold}
}

const capacitySelect = `SELECT c.cnum, ci.ship_id, s.seats, c.num_sold
FROM cruise c
JOIN cruise_info ci ON ci.cruise_id = c.cnum
JOIN ship s ON s.id = ci.ship_id
WHERE c.cnum = ?`

type CruiseRepository struct{ db *sqlx.DB }

func NewCruiseRepository(db *sqlx.DB) *CruiseRepository { return &CruiseRepository{db: db} }

func (r *CruiseRepository) Create(ctx context.Context, tx transaction.Tx, c *cruise.Cruise) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	query := sqlxTx.Rebind(`INSERT INTO cruise (cnum, cost, num_sold, num_stops, actual_departure_date, actual_arrival_date, arrival_port, departure_port) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := sqlxTx.ExecContext(ctx, query, c.Number, c.Cost, c.NumSold, c.NumStops, c.DepartureAt.UTC(), c.ArrivalAt.UTC(), c.ArrivalPort, c.DeparturePort); err != nil {
		if isUniqueViolation(err) {
			return cruise.ErrCruiseAlreadyExists
		}
		return fmt.Errorf("クルーズ登録に失敗: %w", classify(err))
	}
	return nil
}

func (r *CruiseRepository) Assign(ctx context.Context, tx transaction.Tx, a *cruise.Assignment) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	query := sqlxTx.Rebind(`INSERT INTO cruise_info (cruise_id, captain_id, ship_id) VALUES (?, ?, ?)`)
	if _, err := sqlxTx.ExecContext(ctx, query, a.CruiseNumber, a.CaptainID, a.ShipID); err != nil {
		if isUniqueViolation(err) {
			return cruise.ErrAlreadyAssigned
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("船舶または船長が存在しません: %w", err)
		}
		return fmt.Errorf("クルーズ割り当てに失敗: %w", classify(err))
	}
	return nil
}

func (r *CruiseRepository) AddSchedule(ctx context.Context, tx transaction.Tx, s *cruise.Schedule) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	query := sqlxTx.Rebind(`INSERT INTO schedule (cruise_num, departure_time, arrival_time) VALUES (?, ?, ?) RETURNING id`)
	if err := sqlxTx.QueryRowxContext(ctx, query, s.CruiseNumber, s.DepartureTime.UTC(), s.ArrivalTime.UTC()).Scan(&s.ID); err != nil {
		if isForeignKeyViolation(err) {
			return cruise.ErrCruiseNotFound
		}
		return fmt.Errorf("運航スケジュール登録に失敗: %w", classify(err))
	}
	return nil
}

func (r *CruiseRepository) GetByNumber(ctx context.Context, number int64) (*cruise.Cruise, error) {
	var row cruiseRow
	query := r.db.Rebind(`SELECT cnum, cost, num_sold, num_stops, actual_departure_date, actual_arrival_date, arrival_port, departure_port FROM cruise WHERE cnum = ?`)
	if err := r.db.GetContext(ctx, &row, query, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cruise.ErrCruiseNotFound
		}
		return nil, fmt.Errorf("クルーズ取得に失敗: %w", classify(err))
	}
	return row.toEntity(), nil
}

func (r *CruiseRepository) GetCapacityInputs(ctx context.Context, tx transaction.Tx, number int64, lock bool) (*cruise.CapacityInputs, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return nil, err
	}
	query := capacitySelect
	if lock {
		query += lockClause(r.db)
	}
	var row capacityRow
	if err := sqlxTx.GetContext(ctx, &row, sqlxTx.Rebind(query), number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cruise.ErrCruiseNotFound
		}
		return nil, fmt.Errorf("空席計算の入力取得に失敗: %w", classify(err))
	}
	return row.toEntity(), nil
}

func (r *CruiseRepository) IncrementSold(ctx context.Context, tx transaction.Tx, number int64, seats int) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	query := sqlxTx.Rebind(`UPDATE cruise SET num_sold = num_sold + 1 WHERE cnum = ? AND num_sold < ?`)
	result, err := sqlxTx.ExecContext(ctx, query, number, seats)
	if err != nil {
		return fmt.Errorf("販売済み数の更新に失敗: %w", classify(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("販売済み数の更新に失敗: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %w", transaction.ErrConflict, cruise.ErrCapacityExceeded)
	}
	return nil
}

func (r *CruiseRepository) CapacityOn(ctx context.Context, number int64, date time.Time) (*cruise.CapacityInputs, error) {
	start, end := dayRange(date)
	query := r.db.Rebind(capacitySelect + `
AND EXISTS (SELECT 1 FROM schedule sc WHERE sc.cruise_num = c.cnum AND sc.departure_time >= ? AND sc.departure_time < ?)`)
	var row capacityRow
	if err := r.db.GetContext(ctx, &row, query, number, start, end); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("指定日の空席取得に失敗: %w", classify(err))
		}
		if _, err := r.GetByNumber(ctx, number); err != nil {
			return nil, err
		}
		return nil, cruise.ErrSailingNotFound
	}
	return row.toEntity(), nil
}

func (r *CruiseRepository) ListUnderCost(ctx context.Context, maxCost int) ([]cruise.Listing, error) {
	var rows []struct {
		Number        int64     `db:"cnum"`
		DepartureTime time.Time `db:"departure_time"`
		Cost          int       `db:"cost"`
	}
	query := r.db.Rebind(`SELECT c.cnum, s.departure_time, c.cost FROM cruise c JOIN schedule s ON s.cruise_num = c.cnum WHERE c.cost < ? ORDER BY c.cost, c.cnum, s.departure_time`)
	if err := r.db.SelectContext(ctx, &rows, query, maxCost); err != nil {
		return nil, fmt.Errorf("料金条件のクルーズ検索に失敗: %w", classify(err))
	}
	result := make([]cruise.Listing, len(rows))
	for i, row := range rows {
		result[i] = cruise.Listing{CruiseNumber: row.Number, DepartureTime: row.DepartureTime.UTC(), Cost: row.Cost}
	}
	return result, nil
}

var _ cruise.Repository = (*CruiseRepository)(nil)
