package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
)

// ErrDeliveriesClosed はブローカー側で配信チャネルが閉じられた場合のエラー
var ErrDeliveriesClosed = errors.New("配信チャネルが閉じられました")

// Consumer は予約イベントのキューを購読する
type Consumer struct {
	ch    *amqp.Channel
	queue string
}

func NewConsumer(conn *amqp.Connection, queue string) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("チャネルのオープンに失敗: %w", err)
	}
	if err := ch.Qos(50, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("QoS設定に失敗: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		ch.Close()
		return nil, err
	}
	return &Consumer{ch: ch, queue: queue}, nil
}

// Consume は ctx がキャンセルされるまでイベントを handle に渡す
// 処理に失敗したメッセージは再投入せずに破棄する
func (c *Consumer) Consume(ctx context.Context, handle func(context.Context, reservation.Event) error) error {
	msgs, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("購読開始に失敗: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			if err := dispatch(ctx, d.Body, handle); err != nil {
				logger.Warn("予約イベントの処理に失敗しました", zap.String("message_id", d.MessageId), zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) Close() error {
	return c.ch.Close()
}

func dispatch(ctx context.Context, body []byte, handle func(context.Context, reservation.Event) error) error {
	var ev reservation.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("イベントのデシリアライズに失敗: %w", err)
	}
	if _, err := reservation.ParseStatus(string(ev.Status)); err != nil {
		return err
	}
	return handle(ctx, ev)
}
