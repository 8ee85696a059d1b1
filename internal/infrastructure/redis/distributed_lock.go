package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/metrics"
)

var (
	ErrLockNotAcquired = errors.New("ロックを取得できませんでした")
	ErrLockNotOwned    = errors.New("ロックの所有者ではありません")
)

// 所有者確認と削除をアトミックに行う
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`)

// DistributedLock は Redis を使用した分散ロック
type DistributedLock struct {
	client *redis.Client
	key    string
	value  string
}

// LockManager は分散ロックを管理する
type LockManager struct {
	client *redis.Client
}

func NewLockManager(client *redis.Client) *LockManager {
	return &LockManager{client: client}
}

// AcquireLock はロックを取得する
func (m *LockManager) AcquireLock(ctx context.Context, key string, ttl time.Duration) (*DistributedLock, error) {
	lockKey := "lock:" + key
	lockValue := uuid.New().String()

	ok, err := m.client.SetNX(ctx, lockKey, lockValue, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}
	return &DistributedLock{client: m.client, key: lockKey, value: lockValue}, nil
}

// AcquireLockWithRetry はリトライ付きでロックを取得する
func (m *LockManager) AcquireLockWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (*DistributedLock, error) {
	var lastErr error = ErrLockNotAcquired
	for i := 0; i < maxRetries; i++ {
		lock, err := m.AcquireLock(ctx, key, ttl)
		if err == nil {
			return lock, nil
		}
		lastErr = err
		if !errors.Is(err, ErrLockNotAcquired) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, lastErr
}

// Release はロックを解放する
func (l *DistributedLock) Release(ctx context.Context) error {
	result, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.value).Int()
	if err != nil {
		return fmt.Errorf("ロック解放に失敗: %w", err)
	}
	if result == 0 {
		return ErrLockNotOwned
	}
	return nil
}

// CruiseLocker はクルーズ番号単位で予約処理を直列化する分散ロック
// 正しさはデータベースの行ロックで保証されており、このロックは競合を減らすためだけに使う
type CruiseLocker struct {
	manager    *LockManager
	ttl        time.Duration
	retries    int
	retryDelay time.Duration
	metrics    *metrics.Metrics
}

func NewCruiseLocker(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *CruiseLocker {
	return &CruiseLocker{
		manager:    NewLockManager(client),
		ttl:        ttl,
		retries:    20,
		retryDelay: 25 * time.Millisecond,
		metrics:    m,
	}
}

// Lock はクルーズのロックを取得し、解放関数を返す
func (l *CruiseLocker) Lock(ctx context.Context, cruiseID int64) (func(), error) {
	start := time.Now()
	lock, err := l.manager.AcquireLockWithRetry(ctx, cruiseKey(cruiseID), l.ttl, l.retries, l.retryDelay)
	l.observe("acquire", start, err)
	if err != nil {
		return nil, err
	}
	return func() {
		// 予約のコンテキストがキャンセルされていても解放する
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		start := time.Now()
		err := lock.Release(releaseCtx)
		l.observe("release", start, err)
		if err != nil {
			logger.Warn("クルーズロックの解放に失敗しました", logger.CruiseID(cruiseID), zap.Error(err))
		}
	}, nil
}

func (l *CruiseLocker) observe(operation string, start time.Time, err error) {
	if l.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	l.metrics.DistributedLockDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}

func cruiseKey(cruiseID int64) string {
	return "cruise:" + strconv.FormatInt(cruiseID, 10)
}
