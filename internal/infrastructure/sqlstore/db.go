package sqlstore

import (
	"time"

	"github.com/jmoiron/sqlx"
)

func isPostgres(db *sqlx.DB) bool {
	return db.DriverName() == "postgres"
}

// lockClause は判断中にクルーズ行をロックする句を返す
// SQLite は書き込みトランザクションがデータベース全体を直列化するため不要
func lockClause(db *sqlx.DB) string {
	if isPostgres(db) {
		return " FOR UPDATE OF c"
	}
	return ""
}

// dayRange は date を含む UTC の1日 [00:00, 翌00:00) を返す
func dayRange(date time.Time) (time.Time, time.Time) {
	d := date.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
