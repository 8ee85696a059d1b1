package identifier

import (
	"context"
	"errors"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

// Entity は採番対象の種別を表す
type Entity string

const (
	Reservation Entity = "reservation"
	Customer    Entity = "customer"
)

// ErrUnknownEntity は採番カウンタが存在しない種別を指定した場合のエラー
var ErrUnknownEntity = errors.New("採番対象の種別が不明です")

// Allocator は一意なIDを払い出すインターフェース
// 払い出しは挿入と同じトランザクション内で行い、ロールバック時は値も戻る
type Allocator interface {
	Next(ctx context.Context, tx transaction.Tx, entity Entity) (int64, error)
}
