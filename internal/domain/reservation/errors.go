package reservation

import "errors"

// Reservation ドメインのエラー定義
var (
	ErrReservationNotFound = errors.New("予約が見つかりません")
	ErrNotWaitlisted       = errors.New("予約はキャンセル待ちではありません")
	ErrInvalidStatus       = errors.New("予約ステータスは R, W, C のいずれかである必要があります")
	ErrInvalidCustomerID   = errors.New("顧客IDは0以上である必要があります")
	ErrInvalidCruiseID     = errors.New("クルーズ番号は0以上である必要があります")
	ErrStatusChanged       = errors.New("予約ステータスが他の処理により変更されました")
)
