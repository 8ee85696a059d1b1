package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/identifier"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

// CounterAllocator は id_counters テーブルのカウンタ行で採番する
// 1文の UPDATE ... RETURNING で加算と取得を行うため、並行する採番はカウンタ行の
// 行ロックで待たされ、同じ値が二重に払い出されることはない
type CounterAllocator struct{ db *sqlx.DB }

func NewCounterAllocator(db *sqlx.DB) *CounterAllocator { return &CounterAllocator{db: db} }

func (a *CounterAllocator) Next(ctx context.Context, tx transaction.Tx, entity identifier.Entity) (int64, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return 0, err
	}
	var next int64
	query := sqlxTx.Rebind(`UPDATE id_counters SET last_value = last_value + 1 WHERE entity = ? RETURNING last_value`)
	if err := sqlxTx.QueryRowxContext(ctx, query, string(entity)).Scan(&next); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", identifier.ErrUnknownEntity, entity)
		}
		return 0, fmt.Errorf("ID採番に失敗: %w", classify(err))
	}
	return next, nil
}

var _ identifier.Allocator = (*CounterAllocator)(nil)
