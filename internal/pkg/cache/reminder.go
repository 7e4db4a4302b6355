package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/redis/go-redis/v9"
)

const reminderTTL = 48 * time.Hour

func reminderKey(ym localtime.YearMonth, userID, day string) string {
	return fmt.Sprintf("%sreminder:%s:%s:%s", keyPrefix, ym, userID, day)
}

// RedisReminderLedger dedupes reminders across API instances.
type RedisReminderLedger struct {
	rdb *redis.Client
}

func NewRedisReminderLedger(rdb *redis.Client) *RedisReminderLedger {
	return &RedisReminderLedger{rdb: rdb}
}

var _ payroll.ReminderLedger = (*RedisReminderLedger)(nil)

func (l *RedisReminderLedger) MarkReminded(ctx context.Context, ym localtime.YearMonth, userID string, day string) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, reminderKey(ym, userID, day), "1", reminderTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record reminder: %w", err)
	}
	return ok, nil
}

func (l *RedisReminderLedger) Forget(ctx context.Context, ym localtime.YearMonth, userID string, day string) error {
	if err := l.rdb.Del(ctx, reminderKey(ym, userID, day)).Err(); err != nil {
		return fmt.Errorf("failed to release reminder: %w", err)
	}
	return nil
}

// MemoryReminderLedger dedupes reminders within one process.
// Entries for days before the latest one seen are dropped as it goes.
type MemoryReminderLedger struct {
	mu     sync.Mutex
	latest string
	seen   map[string]string // key -> day
}

func NewMemoryReminderLedger() *MemoryReminderLedger {
	return &MemoryReminderLedger{seen: make(map[string]string)}
}

var _ payroll.ReminderLedger = (*MemoryReminderLedger)(nil)

// MarkReminded expects day as YYYY-MM-DD, so days order as strings.
func (l *MemoryReminderLedger) MarkReminded(_ context.Context, ym localtime.YearMonth, userID string, day string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if day > l.latest {
		l.latest = day
		for key, seenDay := range l.seen {
			if seenDay < day {
				delete(l.seen, key)
			}
		}
	}

	key := reminderKey(ym, userID, day)
	if _, ok := l.seen[key]; ok {
		return false, nil
	}
	l.seen[key] = day
	return true, nil
}

func (l *MemoryReminderLedger) Forget(_ context.Context, ym localtime.YearMonth, userID string, day string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.seen, reminderKey(ym, userID, day))
	return nil
}
