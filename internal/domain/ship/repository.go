package ship

import "context"

// RepairCount は船舶ごとの修理件数
type RepairCount struct {
	ShipID  int64
	Repairs int
}

// Repository は船舶リポジトリのインターフェース
type Repository interface {
	// Create は新しい船舶を登録する
	Create(ctx context.Context, s *Ship) error

	// GetByID はIDから船舶を取得する
	GetByID(ctx context.Context, id int64) (*Ship, error)

	// RepairCounts は修理件数の多い順に船舶ごとの件数を返す
	RepairCounts(ctx context.Context) ([]RepairCount, error)
}
