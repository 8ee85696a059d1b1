package reservation

import (
	"context"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Find は顧客とクルーズの組から予約を取得する（トランザクション必須）
	Find(ctx context.Context, tx transaction.Tx, customerID, cruiseID int64) (*Reservation, error)

	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, r *Reservation) error

	// UpdateStatus は from 状態の予約のみを to に更新する（トランザクション必須）
	// 対象行が from でなければ ErrStatusChanged を返す
	UpdateStatus(ctx context.Context, tx transaction.Tx, rnum int64, from, to Status) error

	// ListWaitlisted はクルーズのキャンセル待ち予約を予約番号順に取得する（トランザクション必須）
	ListWaitlisted(ctx context.Context, tx transaction.Tx, cruiseID int64, limit int) ([]*Reservation, error)

	// CountByStatus はクルーズ内の指定状態の予約数を返す
	CountByStatus(ctx context.Context, cruiseID int64, status Status) (int, error)

	// CruisesWithPromotableWaitlist は空席とキャンセル待ちの両方があるクルーズ番号を返す
	CruisesWithPromotableWaitlist(ctx context.Context) ([]int64, error)
}
