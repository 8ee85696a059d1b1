package reservation

import "fmt"

// Status は予約の状態を表す
// R（確定）、W（キャンセル待ち）、C（キャンセル待ちから確定）の3値のみを取る
type Status string

const (
	StatusReserved  Status = "R"
	StatusWaitlist  Status = "W"
	StatusConfirmed Status = "C"
)

// ParseStatus は文字列を Status に変換する
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusReserved, StatusWaitlist, StatusConfirmed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// IsConfirmed は座席を消費している状態（R または C）かを返す
func (s Status) IsConfirmed() bool {
	return s == StatusReserved || s == StatusConfirmed
}

// Label は表示用の名称を返す
func (s Status) Label() string {
	switch s {
	case StatusReserved:
		return "確定"
	case StatusWaitlist:
		return "キャンセル待ち"
	case StatusConfirmed:
		return "キャンセル待ちから確定"
	default:
		return string(s)
	}
}

// Reservation は予約エンティティを表す
type Reservation struct {
	RNum       int64
	CustomerID int64
	CruiseID   int64
	Status     Status
}

// NewReservation は空席数に応じた初期状態の予約を作成する
// 空席があれば R、なければ W になる
func NewReservation(rnum, customerID, cruiseID int64, availableSeats int) *Reservation {
	status := StatusWaitlist
	if availableSeats > 0 {
		status = StatusReserved
	}
	return &Reservation{
		RNum:       rnum,
		CustomerID: customerID,
		CruiseID:   cruiseID,
		Status:     status,
	}
}

// Promote はキャンセル待ちの予約を確定（W→C）にする
// R と C は終端状態であり、降格や再遷移は行わない
func (r *Reservation) Promote() error {
	if r.Status != StatusWaitlist {
		return ErrNotWaitlisted
	}
	r.Status = StatusConfirmed
	return nil
}

// Validate は予約の検証を行う
func (r *Reservation) Validate() error {
	if r.CustomerID < 0 {
		return ErrInvalidCustomerID
	}
	if r.CruiseID < 0 {
		return ErrInvalidCruiseID
	}
	if _, err := ParseStatus(string(r.Status)); err != nil {
		return err
	}
	return nil
}
