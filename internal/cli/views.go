package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sanosuguru/go-cruise-reservation/internal/application"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
)

// BookingView は予約結果の出力
type BookingView struct {
	ReservationID int64  `json:"reservation_id"`
	CustomerID    int64  `json:"customer_id"`
	CruiseID      int64  `json:"cruise_id"`
	Status        string `json:"status"`
	StatusLabel   string `json:"status_label"`
	Outcome       string `json:"outcome"`
}

func newBookingView(r *application.BookingResult) BookingView {
	return BookingView{
		ReservationID: r.ReservationID,
		CustomerID:    r.CustomerID,
		CruiseID:      r.CruiseID,
		Status:        string(r.Status),
		StatusLabel:   r.Status.Label(),
		Outcome:       string(r.Outcome),
	}
}

func (v BookingView) String() string {
	var msg string
	switch application.Outcome(v.Outcome) {
	case application.OutcomeConfirmed:
		msg = "予約が確定しました"
	case application.OutcomeWaitlisted:
		msg = "満席のためキャンセル待ちに登録しました"
	case application.OutcomePromoted:
		msg = "キャンセル待ちから確定に繰り上がりました"
	case application.OutcomeStillWaitlisted:
		msg = "引き続きキャンセル待ちです"
	case application.OutcomeAlreadyBooked:
		msg = "既に予約済みです"
	default:
		msg = v.Outcome
	}
	return fmt.Sprintf("%s（予約番号 %d, 状態 %s: %s）", msg, v.ReservationID, v.Status, v.StatusLabel)
}

// SeatsView は指定日の空席数の出力
type SeatsView struct {
	CruiseID  int64  `json:"cruise_id"`
	Date      string `json:"date"`
	Available int    `json:"available"`
}

func (v SeatsView) String() string {
	return fmt.Sprintf("クルーズ %d（%s）の空席数: %d", v.CruiseID, v.Date, v.Available)
}

// PassengersView は状態別の乗客数の出力
type PassengersView struct {
	CruiseID    int64  `json:"cruise_id"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Count       int    `json:"count"`
}

func (v PassengersView) String() string {
	return fmt.Sprintf("クルーズ %d の %s（%s）の乗客数: %d", v.CruiseID, v.StatusLabel, v.Status, v.Count)
}

// CruiseRow は料金条件検索の1行
type CruiseRow struct {
	CruiseID      int64  `json:"cruise_id"`
	DepartureTime string `json:"departure_time"`
	Cost          int    `json:"cost"`
}

// CruiseListView は料金条件検索の出力
type CruiseListView struct {
	Cruises []CruiseRow `json:"cruises"`
	Count   int         `json:"count"`
}

func newCruiseListView(listings []cruise.Listing) CruiseListView {
	rows := make([]CruiseRow, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, CruiseRow{
			CruiseID:      l.CruiseNumber,
			DepartureTime: l.DepartureTime.UTC().Format(time.RFC3339),
			Cost:          l.Cost,
		})
	}
	return CruiseListView{Cruises: rows, Count: len(rows)}
}

func (v CruiseListView) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CRUISE\tDEPARTURE\tCOST")
	for _, c := range v.Cruises {
		fmt.Fprintf(w, "%d\t%s\t%d\n", c.CruiseID, c.DepartureTime, c.Cost)
	}
	w.Flush()
	fmt.Fprintf(&b, "%d 件", v.Count)
	return b.String()
}

// RepairRow は船舶ごとの修理件数の1行
type RepairRow struct {
	ShipID  int64 `json:"ship_id"`
	Repairs int   `json:"repairs"`
}

// RepairListView は修理件数一覧の出力
type RepairListView struct {
	Ships []RepairRow `json:"ships"`
	Count int         `json:"count"`
}

func newRepairListView(counts []ship.RepairCount) RepairListView {
	rows := make([]RepairRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, RepairRow{ShipID: c.ShipID, Repairs: c.Repairs})
	}
	return RepairListView{Ships: rows, Count: len(rows)}
}

func (v RepairListView) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SHIP\tREPAIRS")
	for _, r := range v.Ships {
		fmt.Fprintf(w, "%d\t%d\n", r.ShipID, r.Repairs)
	}
	w.Flush()
	fmt.Fprintf(&b, "%d 件", v.Count)
	return b.String()
}

// CreatedView は登録結果の出力
type CreatedView struct {
	Entity string `json:"entity"`
	ID     int64  `json:"id"`
}

var entityLabels = map[string]string{
	"ship":     "船舶",
	"captain":  "船長",
	"cruise":   "クルーズ",
	"sailing":  "運航スケジュール（クルーズ番号）",
	"customer": "顧客",
	"repair":   "修理記録",
}

func (v CreatedView) String() string {
	return fmt.Sprintf("%s %d を登録しました", entityLabels[v.Entity], v.ID)
}

// PromotionView は繰り上げ結果の出力
type PromotionView struct {
	CruiseID *int64 `json:"cruise_id,omitempty"`
	Promoted int    `json:"promoted"`
}

func (v PromotionView) String() string {
	if v.CruiseID != nil {
		return fmt.Sprintf("クルーズ %d のキャンセル待ちを %d 件繰り上げました", *v.CruiseID, v.Promoted)
	}
	return fmt.Sprintf("キャンセル待ちを %d 件繰り上げました", v.Promoted)
}

// SeedView は初期データ投入の件数
type SeedView struct {
	Ships     int `json:"ships"`
	Captains  int `json:"captains"`
	Cruises   int `json:"cruises"`
	Sailings  int `json:"sailings"`
	Customers int `json:"customers"`
	Repairs   int `json:"repairs"`
}

func (v SeedView) String() string {
	return fmt.Sprintf("船舶 %d / 船長 %d / クルーズ %d / 運航 %d / 顧客 %d / 修理 %d 件を登録しました",
		v.Ships, v.Captains, v.Cruises, v.Sailings, v.Customers, v.Repairs)
}

// MigrateView はマイグレーション結果の出力
type MigrateView struct {
	Driver  string `json:"driver"`
	Version uint   `json:"version"`
}

func (v MigrateView) String() string {
	return fmt.Sprintf("%s のスキーマを適用しました（version %d）", v.Driver, v.Version)
}

func passengersView(cruiseID int64, status reservation.Status, count int) PassengersView {
	return PassengersView{CruiseID: cruiseID, Status: string(status), StatusLabel: status.Label(), Count: count}
}
