package reservation

import (
	"fmt"
	"time"
)

// EventType は予約イベントの種別
type EventType string

const (
	EventConfirmed  EventType = "confirmed"
	EventWaitlisted EventType = "waitlisted"
	EventPromoted   EventType = "promoted"
)

// Event はコミット済みの予約の状態変化を表す
type Event struct {
	ID            string    `json:"event_id"`
	Type          EventType `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	CustomerID    int64     `json:"customer_id"`
	CruiseID      int64     `json:"cruise_id"`
	Status        Status    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewEvent は予約の現在の状態からイベントを作成する
func NewEvent(id string, eventType EventType, r *Reservation, occurredAt time.Time) Event {
	return Event{
		ID:            id,
		Type:          eventType,
		ReservationID: r.RNum,
		CustomerID:    r.CustomerID,
		CruiseID:      r.CruiseID,
		Status:        r.Status,
		OccurredAt:    occurredAt.UTC(),
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%s: 予約番号 %d（顧客 %d, クルーズ %d, 状態 %s）",
		e.Type, e.ReservationID, e.CustomerID, e.CruiseID, e.Status)
}
