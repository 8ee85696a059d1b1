package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
)

// Publisher は予約イベントを永続キューに配信する
type Publisher struct {
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

// NewPublisher はチャネルを開きキューを宣言する
func NewPublisher(conn *amqp.Connection, queue string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("チャネルのオープンに失敗: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		ch.Close()
		return nil, err
	}
	return &Publisher{ch: ch, queue: queue}, nil
}

// Publish はイベントを JSON で配信する。メッセージはブローカー再起動後も残る
func (p *Publisher) Publish(ctx context.Context, ev reservation.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("イベントのシリアライズに失敗: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ID,
			Type:         string(ev.Type),
			Timestamp:    ev.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("イベント配信に失敗: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}
