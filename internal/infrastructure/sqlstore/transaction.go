package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

// ErrNoTx はリポジトリに sqlstore 以外のトランザクションが渡された場合のエラー
var ErrNoTx = errors.New("sqlstore のトランザクションではありません")

// TxWrapper は sqlx.Tx を transaction.Tx インターフェースでラップする
type TxWrapper struct {
	*sqlx.Tx
}

// Commit はトランザクションをコミットする
func (t *TxWrapper) Commit() error {
	return classify(t.Tx.Commit())
}

// Rollback はトランザクションをロールバックする
func (t *TxWrapper) Rollback() error {
	return t.Tx.Rollback()
}

// TxManager は sqlx.DB を使用したトランザクションマネージャー
type TxManager struct {
	db   *sqlx.DB
	opts *sql.TxOptions
}

// NewTxManager は新しい TxManager を作成する
// level が sql.LevelDefault の場合はドライバーの既定の分離レベルを使う
func NewTxManager(db *sqlx.DB, level sql.IsolationLevel) *TxManager {
	m := &TxManager{db: db}
	if level != sql.LevelDefault && isPostgres(db) {
		m.opts = &sql.TxOptions{Isolation: level}
	}
	return m
}

// Begin は新しいトランザクションを開始する
func (m *TxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	tx, err := m.db.BeginTxx(ctx, m.opts)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", classify(err))
	}
	return &TxWrapper{Tx: tx}, nil
}

// UnwrapTx は transaction.Tx から sqlx.Tx を取り出す
func UnwrapTx(tx transaction.Tx) (*sqlx.Tx, error) {
	if wrapper, ok := tx.(*TxWrapper); ok && wrapper.Tx != nil {
		return wrapper.Tx, nil
	}
	return nil, ErrNoTx
}

var _ transaction.Manager = (*TxManager)(nil)
