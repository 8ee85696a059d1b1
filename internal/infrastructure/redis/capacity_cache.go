package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/metrics"
)

var ErrCacheMiss = errors.New("キャッシュが見つかりません")

// CapacityCache は指定日の空席数をクルーズごとのハッシュにキャッシュする
// 予約の判断には使わず、空席照会の表示にのみ使う
type CapacityCache struct {
	client  *redis.Client
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
}

func NewCapacityCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *CapacityCache {
	return &CapacityCache{client: client, ttl: ttl, metrics: m}
}

// Get はキャッシュ済みの空席数を返す
func (c *CapacityCache) Get(ctx context.Context, cruiseID int64, date time.Time) (int, error) {
	val, err := c.client.HGet(ctx, capacityKey(cruiseID), dateField(date)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// Set は空席数を保存する。TTL はクルーズ単位のハッシュ全体にかかる
func (c *CapacityCache) Set(ctx context.Context, cruiseID int64, date time.Time, available int) error {
	key := capacityKey(cruiseID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, dateField(date), available)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// GetOrLoad はキャッシュを参照し、なければ load の結果を保存して返す
// 同じキーへの同時のキャッシュミスは1回の load にまとめる
// Redis の障害時は load の結果をそのまま返す
func (c *CapacityCache) GetOrLoad(ctx context.Context, cruiseID int64, date time.Time, load func(ctx context.Context) (int, error)) (int, error) {
	if n, err := c.Get(ctx, cruiseID, date); err == nil {
		c.count("hit")
		return n, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		logger.Warn("空席キャッシュを参照できません", logger.CruiseID(cruiseID), zap.Error(err))
	}
	c.count("miss")

	v, err, _ := c.group.Do(capacityKey(cruiseID)+":"+dateField(date), func() (interface{}, error) {
		n, err := load(ctx)
		if err != nil {
			return 0, err
		}
		if err := c.Set(ctx, cruiseID, date, n); err != nil {
			logger.Warn("空席キャッシュを保存できません", logger.CruiseID(cruiseID), zap.Error(err))
		}
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// Invalidate はクルーズの全日付のキャッシュを無効化する
func (c *CapacityCache) Invalidate(ctx context.Context, cruiseID int64) error {
	if err := c.client.Del(ctx, capacityKey(cruiseID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *CapacityCache) count(result string) {
	if c.metrics != nil {
		c.metrics.CapacityCacheRequests.WithLabelValues(result).Inc()
	}
}

func capacityKey(cruiseID int64) string {
	return "capacity:available:" + strconv.FormatInt(cruiseID, 10)
}

func dateField(date time.Time) string {
	return date.UTC().Format("2006-01-02")
}
