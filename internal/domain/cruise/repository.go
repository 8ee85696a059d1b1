package cruise

import (
	"context"
	"time"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

// Repository はクルーズリポジトリのインターフェース
type Repository interface {
	// Create は新しいクルーズを登録する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, c *Cruise) error

	// Assign はクルーズに船舶と船長を割り当てる（トランザクション必須）
	Assign(ctx context.Context, tx transaction.Tx, a *Assignment) error

	// AddSchedule は運航スケジュールを追加する（トランザクション必須）
	AddSchedule(ctx context.Context, tx transaction.Tx, s *Schedule) error

	// GetByNumber はクルーズ番号からクルーズを取得する
	GetByNumber(ctx context.Context, number int64) (*Cruise, error)

	// GetCapacityInputs は割り当て船舶の座席数と販売済み数を取得する（トランザクション必須）
	// lock が true の場合、判断が終わるまでクルーズ行をロックする
	GetCapacityInputs(ctx context.Context, tx transaction.Tx, number int64, lock bool) (*CapacityInputs, error)

	// IncrementSold は販売済み数を1増やす（トランザクション必須）
	// 販売済み数が seats に達している場合は ErrCapacityExceeded を返す
	IncrementSold(ctx context.Context, tx transaction.Tx, number int64, seats int) error

	// CapacityOn は指定日に運航がある場合のみ空席計算の入力を返す
	CapacityOn(ctx context.Context, number int64, date time.Time) (*CapacityInputs, error)

	// ListUnderCost は料金が maxCost 未満のクルーズと出航日時を返す
	ListUnderCost(ctx context.Context, maxCost int) ([]Listing, error)
}
