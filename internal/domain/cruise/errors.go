package cruise

import "errors"

// Cruise ドメインのエラー定義
var (
	ErrCruiseNotFound      = errors.New("クルーズ番号が見つかりません")
	ErrSailingNotFound     = errors.New("指定日の運航が見つかりません")
	ErrCruiseAlreadyExists = errors.New("同じ番号のクルーズが既に存在します")
	ErrAlreadyAssigned     = errors.New("クルーズには既に船舶が割り当てられています")
	ErrCapacityExceeded    = errors.New("クルーズの座席数を超えて販売できません")
	ErrInvalidNumber       = errors.New("クルーズ番号は0以上である必要があります")
	ErrInvalidCost         = errors.New("料金は0より大きい必要があります")
	ErrInvalidNumSold      = errors.New("販売済み数は0以上である必要があります")
	ErrInvalidNumStops     = errors.New("寄港数は0以上である必要があります")
	ErrInvalidSchedule     = errors.New("到着日時は出発日時より後である必要があります")
	ErrPortCodeRequired    = errors.New("港コードは必須です")
	ErrInvalidPortCode     = errors.New("港コードは英大文字5文字である必要があります")
)
