package rabbitmq

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
)

// Dial はブローカーに接続する。コンテナ起動直後を考慮し attempts 回まで再試行する
func Dial(url string, attempts int, delay time.Duration) (*amqp.Connection, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		logger.Warn("RabbitMQへの接続に失敗しました", zap.Int("attempt", i+1), zap.Error(err))
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("RabbitMQに接続できません: %w", lastErr)
}

// declareQueue は永続キューを宣言する（冪等）
func declareQueue(ch *amqp.Channel, name string) error {
	if _, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("キュー宣言に失敗: %w", err)
	}
	return nil
}
