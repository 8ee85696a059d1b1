// Package app はデータストアと各サービスを組み立てる
package app

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/application"
	"github.com/sanosuguru/go-cruise-reservation/internal/config"
	"github.com/sanosuguru/go-cruise-reservation/internal/infrastructure/rabbitmq"
	"github.com/sanosuguru/go-cruise-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-cruise-reservation/internal/infrastructure/sqlstore"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/metrics"
)

// Container は組み立て済みのサービスと、終了時に閉じる接続を保持する
type Container struct {
	DB      *sqlx.DB
	Repos   *sqlstore.Repositories
	Booking *application.BookingService
	Fleet   *application.FleetService
	Query   *application.QueryService

	// MigrationVersion は適用済みのスキーマバージョン（SQLite は 0）
	MigrationVersion uint

	redis     *goredis.Client
	amqp      *amqp.Connection
	publisher *rabbitmq.Publisher
}

// New はデータストアに接続してマイグレーションを適用し、サービスを組み立てる
// データストアに接続できない場合は transaction.ErrStoreUnavailable を返す
// Redis と RabbitMQ は任意で、接続できなければ警告を出して使わずに続行する
func New(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*Container, error) {
	db, err := sqlstore.Open(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}
	version, err := sqlstore.Migrate(db, cfg.Database.MigrationsPath)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("マイグレーション適用済み",
		zap.String("driver", cfg.Database.Driver),
		zap.Uint("version", version),
	)

	if m == nil {
		m = metrics.Discard()
	}

	repos := sqlstore.NewRepositories(db, &cfg.Database)
	retry := application.RetryPolicy{
		MaxRetries: cfg.Booking.MaxRetries,
		Backoff:    cfg.Booking.RetryBackoff,
	}

	capacity := application.NewCapacityResolver(repos.Cruises)
	booking := application.NewBookingService(
		repos.TxManager, capacity, repos.Reservations, repos.Customers, repos.Allocator, retry,
	).WithMetrics(m)
	fleet := application.NewFleetService(
		repos.TxManager, repos.Ships, repos.Captains, repos.Cruises, repos.Customers, repos.Repairs, repos.Allocator, retry,
	).WithMetrics(m)

	c := &Container{DB: db, Repos: repos, Booking: booking, Fleet: fleet, MigrationVersion: version}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(redis.FromConfig(&cfg.Redis))
		if err != nil {
			logger.Warn("Redisに接続できないため、分散ロックと空席キャッシュを使わずに起動します", zap.Error(err))
		} else {
			c.redis = client
			cache := redis.NewCapacityCache(client, cfg.Booking.CapacityCacheTTL, m)
			capacity.WithCache(cache)
			booking.WithCache(cache).WithLocker(redis.NewCruiseLocker(client, cfg.Booking.LockTTL, m))
			logger.Info("Redis接続完了", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	if cfg.RabbitMQ.Enabled {
		if err := c.connectPublisher(cfg.RabbitMQ); err != nil {
			logger.Warn("RabbitMQに接続できないため、予約イベントを配信せずに起動します", zap.Error(err))
		} else {
			booking.WithPublisher(c.publisher)
			logger.Info("RabbitMQ接続完了", zap.String("queue", cfg.RabbitMQ.Queue))
		}
	}

	c.Query = application.NewQueryService(capacity, repos.Cruises, repos.Ships, repos.Reservations)
	return c, nil
}

func (c *Container) connectPublisher(cfg config.RabbitMQConfig) error {
	conn, err := rabbitmq.Dial(cfg.URL, 3, time.Second)
	if err != nil {
		return err
	}
	pub, err := rabbitmq.NewPublisher(conn, cfg.Queue)
	if err != nil {
		conn.Close()
		return err
	}
	c.amqp = conn
	c.publisher = pub
	return nil
}

// Close は開いている接続をすべて閉じる
func (c *Container) Close() error {
	var errs []error
	if c.publisher != nil {
		errs = append(errs, c.publisher.Close())
	}
	if c.amqp != nil {
		errs = append(errs, c.amqp.Close())
	}
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	errs = append(errs, c.DB.Close())
	return errors.Join(errs...)
}
