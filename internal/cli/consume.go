package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/infrastructure/rabbitmq"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
)

// NewConsumeEventsCommand は予約イベントを購読してログに出力するコマンドを作成する
func NewConsumeEventsCommand(rootOpts *RootOptions) *cobra.Command {
	var queue string
	cmd := &cobra.Command{
		Use:   "consume-events",
		Short: "予約イベントのキューを購読し、受信したイベントを出力する",
		Long: `RABBITMQ_URL のブローカーに接続し、予約の確定・キャンセル待ち・繰り上げのイベントを受信します。
Ctrl+C で終了します。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			cfg := rootOpts.loadConfig()
			if queue == "" {
				queue = cfg.RabbitMQ.Queue
			}

			conn, err := rabbitmq.Dial(cfg.RabbitMQ.URL, 3, time.Second)
			if err != nil {
				return out.Fail(WrapExitError(ExitCommandError, "ブローカーに接続できません", err))
			}
			defer conn.Close()

			consumer, err := rabbitmq.NewConsumer(conn, queue)
			if err != nil {
				return out.Fail(WrapExitError(ExitCommandError, "キューを購読できません", err))
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("予約イベントの購読を開始", zap.String("queue", queue))
			err = consumer.Consume(ctx, func(ctx context.Context, ev reservation.Event) error {
				logger.Info("予約イベントを受信",
					zap.String("event_id", ev.ID),
					zap.String("type", string(ev.Type)),
					logger.ReservationID(ev.ReservationID),
					logger.CustomerID(ev.CustomerID),
					logger.CruiseID(ev.CruiseID),
					zap.String("status", string(ev.Status)),
				)
				return out.Success(ev)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return out.Fail(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&queue, "queue", "", "購読するキュー名。省略時は RABBITMQ_QUEUE")
	return cmd
}
