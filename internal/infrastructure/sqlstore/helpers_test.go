package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-cruise-reservation/internal/infrastructure/sqlite"
)

var sailingDay = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedCruise は seats 席の船を割り当てたクルーズと、sailingDay 出航の運航を1件登録する
func seedCruise(t *testing.T, db *sqlx.DB, cnum int64, seats, cost int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, NewShipRepository(db).Create(ctx, ship.NewShip(cnum, "Meyer", "Oasis", 5, seats)))
	require.NoError(t, NewCaptainRepository(db).Create(ctx, captain.NewCaptain(cnum, "Jane Doe", "Norwegian")))

	cruises := NewCruiseRepository(db)
	err := transaction.Run(ctx, NewTxManager(db, 0), func(tx transaction.Tx) error {
		c := cruise.NewCruise(cnum, cost, 0, 2, sailingDay, sailingDay.Add(72*time.Hour), "MIAMI", "NASSA")
		if err := cruises.Create(ctx, tx, c); err != nil {
			return err
		}
		if err := cruises.Assign(ctx, tx, &cruise.Assignment{CruiseNumber: cnum, ShipID: cnum, CaptainID: cnum}); err != nil {
			return err
		}
		return cruises.AddSchedule(ctx, tx, &cruise.Schedule{
			CruiseNumber: cnum, DepartureTime: sailingDay, ArrivalTime: sailingDay.Add(72 * time.Hour),
		})
	})
	require.NoError(t, err)
}

// seedCustomer は指定IDの顧客を登録する
func seedCustomer(t *testing.T, db *sqlx.DB, id int64) {
	t.Helper()
	ctx := context.Background()
	c := customer.NewCustomer("Hanako", "Yamada", customer.GenderFemale,
		time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC), "1-2-3 Shibuya", "0312345678", "1500001")
	c.ID = id
	err := transaction.Run(ctx, NewTxManager(db, 0), func(tx transaction.Tx) error {
		return NewCustomerRepository(db).Create(ctx, tx, c)
	})
	require.NoError(t, err)
}
