package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
)

type shipRow struct {
	ID    int64  `db:"id"`
	Make  string `db:"make"`
	Model string `db:"model"`
	Age   int    `db:"age"`
	Seats int    `db:"seats"`
}

func (r *shipRow) toEntity() *ship.Ship {
	return &ship.Ship{ID: r.ID, Make: r.Make, Model: r.Model, Age: r.Age, Seats: r.Seats}
}

type ShipRepository struct{ db *sqlx.DB }

func NewShipRepository(db *sqlx.DB) *ShipRepository { return &ShipRepository{db: db} }

func (r *ShipRepository) Create(ctx context.Context, s *ship.Ship) error {
	query := r.db.Rebind(`INSERT INTO ship (id, make, model, age, seats) VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Make, s.Model, s.Age, s.Seats); err != nil {
		if isUniqueViolation(err) {
			return ship.ErrShipAlreadyExists
		}
		return fmt.Errorf("船舶登録に失敗: %w", classify(err))
	}
	return nil
}

func (r *ShipRepository) GetByID(ctx context.Context, id int64) (*ship.Ship, error) {
	var row shipRow
	query := r.db.Rebind(`SELECT id, make, model, age, seats FROM ship WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ship.ErrShipNotFound
		}
		return nil, fmt.Errorf("船舶取得に失敗: %w", classify(err))
	}
	return row.toEntity(), nil
}

func (r *ShipRepository) RepairCounts(ctx context.Context) ([]ship.RepairCount, error) {
	var rows []struct {
		ShipID  int64 `db:"ship_id"`
		Repairs int   `db:"repairs"`
	}
	query := `SELECT ship_id, COUNT(*) AS repairs FROM repairs GROUP BY ship_id ORDER BY repairs DESC, ship_id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("修理件数の集計に失敗: %w", classify(err))
	}
	result := make([]ship.RepairCount, len(rows))
	for i, row := range rows {
		result[i] = ship.RepairCount{ShipID: row.ShipID, Repairs: row.Repairs}
	}
	return result, nil
}

var _ ship.Repository = (*ShipRepository)(nil)
