package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
)

type captainRow struct {
	ID          int64  `db:"id"`
	FullName    string `db:"fullname"`
	Nationality string `db:"nationality"`
}

type CaptainRepository struct{ db *sqlx.DB }

func NewCaptainRepository(db *sqlx.DB) *CaptainRepository { return &CaptainRepository{db: db} }

func (r *CaptainRepository) Create(ctx context.Context, c *captain.Captain) error {
	query := r.db.Rebind(`INSERT INTO captain (id, fullname, nationality) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.FullName, c.Nationality); err != nil {
		if isUniqueViolation(err) {
			return captain.ErrCaptainAlreadyExists
		}
		return fmt.Errorf("船長登録に失敗: %w", classify(err))
	}
	return nil
}

func (r *CaptainRepository) GetByID(ctx context.Context, id int64) (*captain.Captain, error) {
	var row captainRow
	query := r.db.Rebind(`SELECT id, fullname, nationality FROM captain WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, captain.ErrCaptainNotFound
		}
		return nil, fmt.Errorf("船長取得に失敗: %w", classify(err))
	}
	return &captain.Captain{ID: row.ID, FullName: row.FullName, Nationality: row.Nationality}, nil
}

var _ captain.Repository = (*CaptainRepository)(nil)
