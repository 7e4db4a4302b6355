package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/redis/go-redis/v9"
)

const (
	generationKey = "payroll:generation"
	keyPrefix     = "payroll:"
)

// SummaryCache stores live payroll computations in Redis.
//
// Entries are keyed by a generation counter. Invalidate bumps the counter
// so every older entry becomes unreachable and expires through its TTL.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSummaryCache(rdb *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

var _ payroll.SummaryCache = (*SummaryCache)(nil)

func summaryKey(gen payroll.CacheGeneration, kind string, ym localtime.YearMonth, employeeID *string) string {
	scope := "all"
	if employeeID != nil {
		scope = *employeeID
	}
	return fmt.Sprintf("%s%d:%s:%s:%s", keyPrefix, gen, kind, ym, scope)
}

// Generation reads the current epoch; false means Redis is unavailable.
func (c *SummaryCache) Generation(ctx context.Context) (payroll.CacheGeneration, bool) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		slog.Warn("payroll cache unavailable", "error", err)
		return 0, false
	}
	return payroll.CacheGeneration(gen), true
}

func (c *SummaryCache) get(ctx context.Context, gen payroll.CacheGeneration, kind string, ym localtime.YearMonth, employeeID *string, dst interface{}) bool {
	raw, err := c.rdb.Get(ctx, summaryKey(gen, kind, ym, employeeID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("payroll cache read failed", "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("payroll cache entry unreadable", "error", err)
		return false
	}
	return true
}

// set stores v under gen. A gen older than the current epoch is skipped.
func (c *SummaryCache) set(ctx context.Context, gen payroll.CacheGeneration, kind string, ym localtime.YearMonth, employeeID *string, v interface{}) {
	current, ok := c.Generation(ctx)
	if !ok || current != gen {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("failed to encode payroll cache entry", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, summaryKey(gen, kind, ym, employeeID), raw, c.ttl).Err(); err != nil {
		slog.Warn("payroll cache write failed", "error", err)
	}
}

func (c *SummaryCache) GetSummaries(ctx context.Context, gen payroll.CacheGeneration, ym localtime.YearMonth, employeeID *string) ([]payroll.EmployeeSummary, bool) {
	var v []payroll.EmployeeSummary
	ok := c.get(ctx, gen, "summary", ym, employeeID, &v)
	return v, ok
}

func (c *SummaryCache) SetSummaries(ctx context.Context, gen payroll.CacheGeneration, ym localtime.YearMonth, employeeID *string, v []payroll.EmployeeSummary) {
	c.set(ctx, gen, "summary", ym, employeeID, v)
}

func (c *SummaryCache) GetDaily(ctx context.Context, gen payroll.CacheGeneration, ym localtime.YearMonth, employeeID *string) ([]payroll.DailyEntry, bool) {
	var v []payroll.DailyEntry
	ok := c.get(ctx, gen, "daily", ym, employeeID, &v)
	return v, ok
}

func (c *SummaryCache) SetDaily(ctx context.Context, gen payroll.CacheGeneration, ym localtime.YearMonth, employeeID *string, v []payroll.DailyEntry) {
	c.set(ctx, gen, "daily", ym, employeeID, v)
}

func (c *SummaryCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump payroll cache generation: %w", err)
	}
	return nil
}

// Noop never hits. Used when Redis is not configured.
type Noop struct{}

var _ payroll.SummaryCache = Noop{}

func (Noop) Generation(context.Context) (payroll.CacheGeneration, bool) { return 0, false }

func (Noop) GetSummaries(context.Context, payroll.CacheGeneration, localtime.YearMonth, *string) ([]payroll.EmployeeSummary, bool) {
	return nil, false
}

func (Noop) SetSummaries(context.Context, payroll.CacheGeneration, localtime.YearMonth, *string, []payroll.EmployeeSummary) {
}

func (Noop) GetDaily(context.Context, payroll.CacheGeneration, localtime.YearMonth, *string) ([]payroll.DailyEntry, bool) {
	return nil, false
}

func (Noop) SetDaily(context.Context, payroll.CacheGeneration, localtime.YearMonth, *string, []payroll.DailyEntry) {}

func (Noop) Invalidate(context.Context) error { return nil }
