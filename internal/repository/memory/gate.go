package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

// periodGate mirrors the advisory-lock gate with one RWMutex per month:
// shift writers share it, period transitions hold it exclusively.
type periodGate struct {
	s     *Store
	mu    sync.Mutex
	locks map[int]*sync.RWMutex
}

// Gate returns the store's gate; every caller shares the same month locks.
func (s *Store) Gate() payroll.PeriodGate { return s.gate }

func (g *periodGate) lockFor(ym localtime.YearMonth) *sync.RWMutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.locks[ym.Key()]
	if !ok {
		l = &sync.RWMutex{}
		g.locks[ym.Key()] = l
	}
	return l
}

func (g *periodGate) WithOpenMonths(ctx context.Context, months []localtime.YearMonth, fn func(ctx context.Context) error) error {
	keys := make(map[int]localtime.YearMonth, len(months))
	for _, m := range months {
		keys[m.Key()] = m
	}
	sorted := make([]localtime.YearMonth, 0, len(keys))
	for _, m := range keys {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	periods := periodRepository{g.s}
	for _, ym := range sorted {
		l := g.lockFor(ym)
		l.RLock()
		defer l.RUnlock()

		if p, err := periods.GetByMonth(ctx, ym); err == nil && p.IsClosed() {
			return &payroll.PeriodLockedError{YearMonth: ym}
		}
	}
	return fn(ctx)
}

func (g *periodGate) WithPeriodExclusive(ctx context.Context, month localtime.YearMonth, fn func(ctx context.Context) error) error {
	l := g.lockFor(month)
	l.Lock()
	defer l.Unlock()
	return fn(ctx)
}
