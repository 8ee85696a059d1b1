package captain

import "context"

// Repository は船長リポジトリのインターフェース
type Repository interface {
	// Create は新しい船長を登録する
	Create(ctx context.Context, c *Captain) error

	// GetByID はIDから船長を取得する
	GetByID(ctx context.Context, id int64) (*Captain, error)
}
