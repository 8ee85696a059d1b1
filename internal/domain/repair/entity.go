package repair

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"
)

// MaxCodeLength は修理コードの最大長
const MaxCodeLength = 64

var (
	ErrInvalidID      = errors.New("修理IDは0以上である必要があります")
	ErrDateRequired   = errors.New("修理日は必須です")
	ErrCodeRequired   = errors.New("修理コードは必須です")
	ErrCodeTooLong    = errors.New("修理コードは64文字以内である必要があります")
	ErrAlreadyExists  = errors.New("同じIDの修理記録が既に存在します")
	ErrUnknownShip    = errors.New("修理対象の船舶が見つかりません")
	ErrUnknownCaptain = errors.New("修理を依頼した船長が見つかりません")
)

// Repair は船舶の修理記録を表す
type Repair struct {
	ID        int64
	Date      time.Time
	Code      string
	CaptainID int64
	ShipID    int64
}

// Validate は修理記録の検証を行う
func (r *Repair) Validate() error {
	switch {
	case r.ID < 0:
		return ErrInvalidID
	case r.Date.IsZero():
		return ErrDateRequired
	case r.Code == "":
		return ErrCodeRequired
	case utf8.RuneCountInString(r.Code) > MaxCodeLength:
		return ErrCodeTooLong
	}
	return nil
}

// Repository は修理記録リポジトリのインターフェース
type Repository interface {
	Create(ctx context.Context, r *Repair) error
}
