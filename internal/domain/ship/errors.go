package ship

import "errors"

// Ship ドメインのエラー定義
var (
	ErrShipNotFound      = errors.New("船舶が見つかりません")
	ErrShipAlreadyExists = errors.New("同じIDの船舶が既に存在します")
	ErrInvalidID         = errors.New("船舶IDは0以上である必要があります")
	ErrMakeRequired      = errors.New("メーカーは必須です")
	ErrMakeTooLong       = errors.New("メーカーは32文字以内である必要があります")
	ErrModelRequired     = errors.New("モデルは必須です")
	ErrModelTooLong      = errors.New("モデルは64文字以内である必要があります")
	ErrInvalidAge        = errors.New("船齢は0以上である必要があります")
	ErrInvalidSeats      = errors.New("座席数は1以上500以下である必要があります")
)
