package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
)

type customerRow struct {
	ID          int64     `db:"id"`
	FirstName   string    `db:"fname"`
	LastName    string    `db:"lname"`
	Gender      string    `db:"gtype"`
	DateOfBirth time.Time `db:"dob"`
	Address     string    `db:"address"`
	Phone       string    `db:"phone"`
	ZipCode     string    `db:"zipcode"`
}

func (r *customerRow) toEntity() *customer.Customer {
	return &customer.Customer{
		ID: r.ID, FirstName: r.FirstName, LastName: r.LastName,
		Gender: customer.Gender(r.Gender), DateOfBirth: r.DateOfBirth.UTC(),
		Address: r.Address, Phone: r.Phone, ZipCode: r.ZipCode,
	}
}

type CustomerRepository struct{ db *sqlx.DB }

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(ctx context.Context, tx transaction.Tx, c *customer.Customer) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	query := sqlxTx.Rebind(`INSERT INTO customer (id, fname, lname, gtype, dob, address, phone, zipcode) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := sqlxTx.ExecContext(ctx, query, c.ID, c.FirstName, c.LastName, string(c.Gender), c.DateOfBirth.UTC(), c.Address, c.Phone, c.ZipCode); err != nil {
		if isUniqueViolation(err) {
			// 採番済みIDの重複は同時実行による競合として扱う
			return fmt.Errorf("%w: %v", transaction.ErrConflict, err)
		}
		return fmt.Errorf("顧客登録に失敗: %w", classify(err))
	}
	return nil
}

func (r *CustomerRepository) Exists(ctx context.Context, tx transaction.Tx, id int64) (bool, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return false, err
	}
	var n int
	query := sqlxTx.Rebind(`SELECT COUNT(*) FROM customer WHERE id = ?`)
	if err := sqlxTx.GetContext(ctx, &n, query, id); err != nil {
		return false, fmt.Errorf("顧客の存在確認に失敗: %w", classify(err))
	}
	return n > 0, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var row customerRow
	query := r.db.Rebind(`SELECT id, fname, lname, gtype, dob, address, phone, zipcode FROM customer WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("顧客取得に失敗: %w", classify(err))
	}
	return row.toEntity(), nil
}

var _ customer.Repository = (*CustomerRepository)(nil)
