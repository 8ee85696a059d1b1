package transaction

import "errors"

// データストア共通のエラー定義
var (
	// ErrConflict は直列化失敗・ロック競合など、再試行すれば成功し得る競合
	ErrConflict = errors.New("トランザクションが競合しました")
	// ErrStoreUnavailable は接続断・タイムアウトなどデータストア自体の障害
	ErrStoreUnavailable = errors.New("データストアに接続できません")
)
