package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/repair"
)

type RepairRepository struct{ db *sqlx.DB }

func NewRepairRepository(db *sqlx.DB) *RepairRepository { return &RepairRepository{db: db} }

func (r *RepairRepository) Create(ctx context.Context, rp *repair.Repair) error {
	query := r.db.Rebind(`INSERT INTO repairs (rid, repair_date, repair_code, captain_id, ship_id) VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, rp.ID, rp.Date.UTC(), rp.Code, rp.CaptainID, rp.ShipID); err != nil {
		if isUniqueViolation(err) {
			return repair.ErrAlreadyExists
		}
		return fmt.Errorf("修理記録の登録に失敗: %w", classify(err))
	}
	return nil
}

var _ repair.Repository = (*RepairRepository)(nil)
