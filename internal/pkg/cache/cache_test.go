package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mol-coffee/mol-backend-go/internal/config"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func summaryOf(employeeID string, salary int64) []payroll.EmployeeSummary {
	return []payroll.EmployeeSummary{{
		EmployeeID:   employeeID,
		EmployeeName: "Anh",
		TotalHours:   decimal.NewFromInt(salary / 25000),
		TotalSalary:  decimal.NewFromInt(salary),
	}}
}

func TestSummaryKey(t *testing.T) {
	ym := localtime.MustParseYearMonth("09-2025")
	employee := "e1"

	assert.Equal(t, "payroll:3:summary:2025-09:all", summaryKey(3, "summary", ym, nil))
	assert.Equal(t, "payroll:3:daily:2025-09:e1", summaryKey(3, "daily", ym, &employee))
	assert.NotEqual(t, summaryKey(3, "summary", ym, nil), summaryKey(4, "summary", ym, nil))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	ym := localtime.MustParseYearMonth("2025-09")

	var c Noop
	_, ok := c.Generation(ctx)
	assert.False(t, ok)
	c.SetSummaries(ctx, 0, ym, nil, nil)
	_, ok = c.GetSummaries(ctx, 0, ym, nil)
	assert.False(t, ok)
	_, ok = c.GetDaily(ctx, 0, ym, nil)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestSummaryCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	c := NewSummaryCache(rdb, time.Minute)
	ym := localtime.MustParseYearMonth("2025-09")
	employee := "e1"

	gen, ok := c.Generation(ctx)
	require.True(t, ok)
	assert.Equal(t, payroll.CacheGeneration(0), gen)

	_, hit := c.GetSummaries(ctx, gen, ym, nil)
	assert.False(t, hit)

	c.SetSummaries(ctx, gen, ym, nil, summaryOf("e1", 150000))
	c.SetDaily(ctx, gen, ym, &employee, []payroll.DailyEntry{{EmployeeID: "e1", Date: "2025-09-01"}})

	got, hit := c.GetSummaries(ctx, gen, ym, nil)
	require.True(t, hit)
	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromInt(150000).Equal(got[0].TotalSalary))

	daily, hit := c.GetDaily(ctx, gen, ym, &employee)
	require.True(t, hit)
	assert.Equal(t, "2025-09-01", daily[0].Date)

	// Scopes do not share entries.
	_, hit = c.GetDaily(ctx, gen, ym, nil)
	assert.False(t, hit)
}

func TestSummaryCache_InvalidateHidesOlderEntries(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	c := NewSummaryCache(rdb, time.Minute)
	ym := localtime.MustParseYearMonth("2025-09")

	gen, _ := c.Generation(ctx)
	c.SetSummaries(ctx, gen, ym, nil, summaryOf("e1", 150000))
	require.NoError(t, c.Invalidate(ctx))

	next, ok := c.Generation(ctx)
	require.True(t, ok)
	assert.Equal(t, gen+1, next)
	_, hit := c.GetSummaries(ctx, next, ym, nil)
	assert.False(t, hit)
}

func TestSummaryCache_ResultFromBeforeInvalidateIsNotServed(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	c := NewSummaryCache(rdb, time.Minute)
	ym := localtime.MustParseYearMonth("2025-09")

	// A reader misses and starts loading shifts and rates.
	gen, _ := c.Generation(ctx)
	_, hit := c.GetSummaries(ctx, gen, ym, nil)
	require.False(t, hit)

	// A shift write commits and invalidates before the reader stores its result.
	require.NoError(t, c.Invalidate(ctx))
	c.SetSummaries(ctx, gen, ym, nil, summaryOf("e1", 150000))

	current, _ := c.Generation(ctx)
	_, hit = c.GetSummaries(ctx, current, ym, nil)
	assert.False(t, hit)

	fresh := summaryOf("e1", 200000)
	c.SetSummaries(ctx, current, ym, nil, fresh)
	got, hit := c.GetSummaries(ctx, current, ym, nil)
	require.True(t, hit)
	assert.True(t, decimal.NewFromInt(200000).Equal(got[0].TotalSalary))
}

func TestSummaryCache_EntriesExpire(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	c := NewSummaryCache(rdb, time.Minute)
	ym := localtime.MustParseYearMonth("2025-09")

	gen, _ := c.Generation(ctx)
	c.SetSummaries(ctx, gen, ym, nil, summaryOf("e1", 150000))
	mr.FastForward(2 * time.Minute)

	_, hit := c.GetSummaries(ctx, gen, ym, nil)
	assert.False(t, hit)
}

func TestSummaryCache_Unavailable(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	c := NewSummaryCache(rdb, time.Minute)
	mr.Close()

	_, ok := c.Generation(ctx)
	assert.False(t, ok)
	assert.Error(t, c.Invalidate(ctx))
}

func TestRedisReminderLedger(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	l := NewRedisReminderLedger(rdb)
	ym := localtime.MustParseYearMonth("2025-09")

	first, err := l.MarkReminded(ctx, ym, "e1", "2025-10-02")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := l.MarkReminded(ctx, ym, "e1", "2025-10-02")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := l.MarkReminded(ctx, ym, "e2", "2025-10-02")
	require.NoError(t, err)
	assert.True(t, other)

	key := reminderKey(ym, "e1", "2025-10-02")
	assert.Equal(t, reminderTTL, mr.TTL(key))

	require.NoError(t, l.Forget(ctx, ym, "e2", "2025-10-02"))
	retried, err := l.MarkReminded(ctx, ym, "e2", "2025-10-02")
	require.NoError(t, err)
	assert.True(t, retried)

	mr.FastForward(reminderTTL + time.Second)
	assert.False(t, mr.Exists(key))
}

func TestMemoryReminderLedger(t *testing.T) {
	ctx := context.Background()
	ym := localtime.MustParseYearMonth("2025-09")
	l := NewMemoryReminderLedger()

	first, err := l.MarkReminded(ctx, ym, "e1", "2025-10-02")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := l.MarkReminded(ctx, ym, "e1", "2025-10-02")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := l.MarkReminded(ctx, ym, "e2", "2025-10-02")
	require.NoError(t, err)
	assert.True(t, other)

	require.NoError(t, l.Forget(ctx, ym, "e2", "2025-10-02"))
	retried, err := l.MarkReminded(ctx, ym, "e2", "2025-10-02")
	require.NoError(t, err)
	assert.True(t, retried)

	nextDay, err := l.MarkReminded(ctx, ym, "e1", "2025-10-03")
	require.NoError(t, err)
	assert.True(t, nextDay)
}

func TestMemoryReminderLedger_DropsPastDays(t *testing.T) {
	ctx := context.Background()
	september := localtime.MustParseYearMonth("2025-09")
	october := localtime.MustParseYearMonth("2025-10")
	l := NewMemoryReminderLedger()

	for _, user := range []string{"e1", "e2", "e3"} {
		_, err := l.MarkReminded(ctx, september, user, "2025-10-02")
		require.NoError(t, err)
		_, err = l.MarkReminded(ctx, october, user, "2025-10-02")
		require.NoError(t, err)
	}
	assert.Len(t, l.seen, 6)

	_, err := l.MarkReminded(ctx, september, "e1", "2025-10-03")
	require.NoError(t, err)
	assert.Len(t, l.seen, 1)

	today, err := l.MarkReminded(ctx, september, "e1", "2025-10-03")
	require.NoError(t, err)
	assert.False(t, today)
}
