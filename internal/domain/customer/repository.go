package customer

import (
	"context"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

// Repository は顧客リポジトリのインターフェース
type Repository interface {
	// Create は採番済みの顧客を登録する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, c *Customer) error

	// Exists は顧客が存在するかを返す（トランザクション必須）
	Exists(ctx context.Context, tx transaction.Tx, id int64) (bool, error)

	// GetByID はIDから顧客を取得する
	GetByID(ctx context.Context, id int64) (*Customer, error)
}
