package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cruise-reservation/internal/config"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-cruise-reservation/internal/infrastructure/postgres"
	"github.com/sanosuguru/go-cruise-reservation/internal/infrastructure/sqlite"
)

// Open は設定されたドライバーでデータストアに接続する
// 接続できない場合は transaction.ErrStoreUnavailable を返す
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = postgres.NewConnection(ctx, cfg)
	case config.DriverSQLite:
		db, err = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("未対応のデータベースドライバーです: %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transaction.ErrStoreUnavailable, err)
	}
	return db, nil
}

// Migrate はPostgreSQLにマイグレーションを適用する
// SQLite は Open 時に埋め込みスキーマを適用済みのため何もしない
func Migrate(db *sqlx.DB, migrationsPath string) (uint, error) {
	if !isPostgres(db) {
		return 0, nil
	}
	return postgres.RunMigrations(db, migrationsPath)
}

// Repositories はデータストアに対する全リポジトリをまとめたもの
type Repositories struct {
	Ships        *ShipRepository
	Captains     *CaptainRepository
	Cruises      *CruiseRepository
	Customers    *CustomerRepository
	Reservations *ReservationRepository
	Repairs      *RepairRepository
	Allocator    *CounterAllocator
	TxManager    *TxManager
}

// NewRepositories は db に対するリポジトリ一式を作成する
func NewRepositories(db *sqlx.DB, cfg *config.DatabaseConfig) *Repositories {
	return &Repositories{
		Ships:        NewShipRepository(db),
		Captains:     NewCaptainRepository(db),
		Cruises:      NewCruiseRepository(db),
		Customers:    NewCustomerRepository(db),
		Reservations: NewReservationRepository(db),
		Repairs:      NewRepairRepository(db),
		Allocator:    NewCounterAllocator(db),
		TxManager:    NewTxManager(db, cfg.IsolationLevel()),
	}
}
