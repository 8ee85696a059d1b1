package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

type reservationRow struct {
	RNum       int64  `db:"rnum"`
	CustomerID int64  `db:"ccid"`
	CruiseID   int64  `db:"cid"`
	Status     string `db:"status"`
}

func (r *reservationRow) toEntity() *reservation.Reservation {
	return &reservation.Reservation{
		RNum: r.RNum, CustomerID: r.CustomerID, CruiseID: r.CruiseID,
		Status: reservation.Status(r.Status),
	}
}

type ReservationRepository struct{ db *sqlx.DB }

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Find(ctx context.Context, tx transaction.Tx, customerID, cruiseID int64) (*reservation.Reservation, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return nil, err
	}
	var row reservationRow
	query := sqlxTx.Rebind(`SELECT rnum, ccid, cid, status FROM reservation WHERE ccid = ? AND cid = ?`)
	if err := sqlxTx.GetContext(ctx, &row, query, customerID, cruiseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", classify(err))
	}
	return row.toEntity(), nil
}

func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	query := sqlxTx.Rebind(`INSERT INTO reservation (rnum, ccid, cid, status) VALUES (?, ?, ?, ?)`)
	if _, err := sqlxTx.ExecContext(ctx, query, res.RNum, res.CustomerID, res.CruiseID, string(res.Status)); err != nil {
		if isUniqueViolation(err) {
			// 同じ顧客とクルーズの組が並行して作成された
			return fmt.Errorf("%w: %v", transaction.ErrConflict, err)
		}
		return fmt.Errorf("予約作成に失敗: %w", classify(err))
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, rnum int64, from, to reservation.Status) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	query := sqlxTx.Rebind(`UPDATE reservation SET status = ? WHERE rnum = ? AND status = ?`)
	result, err := sqlxTx.ExecContext(ctx, query, string(to), rnum, string(from))
	if err != nil {
		return fmt.Errorf("予約状態の更新に失敗: %w", classify(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("予約状態の更新に失敗: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %w", transaction.ErrConflict, reservation.ErrStatusChanged)
	}
	return nil
}

func (r *ReservationRepository) ListWaitlisted(ctx context.Context, tx transaction.Tx, cruiseID int64, limit int) ([]*reservation.Reservation, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return nil, err
	}
	var rows []reservationRow
	query := sqlxTx.Rebind(`SELECT rnum, ccid, cid, status FROM reservation WHERE cid = ? AND status = 'W' ORDER BY rnum LIMIT ?`)
	if err := sqlxTx.SelectContext(ctx, &rows, query, cruiseID, limit); err != nil {
		return nil, fmt.Errorf("キャンセル待ち一覧取得に失敗: %w", classify(err))
	}
	result := make([]*reservation.Reservation, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *ReservationRepository) CountByStatus(ctx context.Context, cruiseID int64, status reservation.Status) (int, error) {
	var n int
	query := r.db.Rebind(`SELECT COUNT(*) FROM reservation WHERE cid = ? AND status = ?`)
	if err := r.db.GetContext(ctx, &n, query, cruiseID, string(status)); err != nil {
		return 0, fmt.Errorf("予約数の集計に失敗: %w", classify(err))
	}
	return n, nil
}

func (r *ReservationRepository) CruisesWithPromotableWaitlist(ctx context.Context) ([]int64, error) {
	var ids []int64
	query := `SELECT c.cnum
FROM cruise c
JOIN cruise_info ci ON ci.cruise_id = c.cnum
JOIN ship s ON s.id = ci.ship_id
WHERE c.num_sold < s.seats
  AND EXISTS (SELECT 1 FROM reservation r WHERE r.cid = c.cnum AND r.status = 'W')
ORDER BY c.cnum`
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("繰り上げ対象クルーズの取得に失敗: %w", classify(err))
	}
	return ids, nil
}

var _ reservation.Repository = (*ReservationRepository)(nil)
