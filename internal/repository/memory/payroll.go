package memory

import (
	"context"
	"sort"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/localtime"
)

// ========== PERIODS ==========

type periodRepository struct{ s *Store }

func (s *Store) Periods() payroll.PeriodRepository { return periodRepository{s} }

// byMonth is called with mu held.
func (r periodRepository) byMonth(ym localtime.YearMonth) (payroll.Period, bool) {
	for _, p := range r.s.periods {
		if p.YearMonth == ym {
			return p, true
		}
	}
	return payroll.Period{}, false
}

func (r periodRepository) GetByMonth(_ context.Context, ym localtime.YearMonth) (payroll.Period, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.byMonth(ym)
	if !ok {
		return payroll.Period{}, payroll.ErrPeriodNotFound
	}
	return p, nil
}

func (r periodRepository) List(_ context.Context) ([]payroll.Period, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]payroll.Period, 0, len(r.s.periods))
	for _, p := range r.s.periods {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].YearMonth.Before(out[i].YearMonth) })
	return out, nil
}

func (r periodRepository) ListClosedSince(_ context.Context, ym localtime.YearMonth) ([]payroll.Period, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]payroll.Period, 0)
	for _, p := range r.s.periods {
		if p.IsClosed() && !p.YearMonth.Before(ym) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearMonth.Before(out[j].YearMonth) })
	return out, nil
}

func (r periodRepository) Create(_ context.Context, p payroll.Period) (payroll.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.byMonth(p.YearMonth); exists {
		return payroll.Period{}, payroll.ErrPeriodAlreadyExists
	}
	p.ID = r.s.nextID()
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.periods[p.ID] = p
	return p, nil
}

func (r periodRepository) UpdateStatus(_ context.Context, p payroll.Period) (payroll.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.periods[p.ID]
	if !ok {
		return payroll.Period{}, payroll.ErrPeriodNotFound
	}
	existing.Status = p.Status
	existing.ClosedBy = p.ClosedBy
	existing.ClosedAt = p.ClosedAt
	existing.UpdatedAt = r.s.now()
	r.s.periods[p.ID] = existing
	return existing, nil
}

func (r periodRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.periods[id]; !ok {
		return payroll.ErrPeriodNotFound
	}
	delete(r.s.periods, id)
	delete(r.s.snapshots, id)
	for key, c := range r.s.confirmations {
		if c.PeriodID == id {
			delete(r.s.confirmations, key)
		}
	}
	return nil
}

// ========== CONFIRMATIONS ==========

type confirmationRepository struct{ s *Store }

func (s *Store) Confirmations() payroll.ConfirmationRepository { return confirmationRepository{s} }

func confirmationKey(periodID, userID string) string {
	return periodID + "/" + userID
}

func (r confirmationRepository) Get(_ context.Context, periodID, userID string) (payroll.Confirmation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.confirmations[confirmationKey(periodID, userID)]
	if !ok {
		return payroll.Confirmation{}, payroll.ErrConfirmationNotFound
	}
	return c, nil
}

func (r confirmationRepository) ListByPeriod(_ context.Context, periodID string) ([]payroll.Confirmation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]payroll.Confirmation, 0)
	for _, c := range r.s.confirmations {
		if c.PeriodID == periodID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r confirmationRepository) Upsert(_ context.Context, c payroll.Confirmation) (payroll.Confirmation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[c.UserID]; !ok {
		return payroll.Confirmation{}, payroll.ErrEmployeeNotFound
	}
	key := confirmationKey(c.PeriodID, c.UserID)
	if existing, ok := r.s.confirmations[key]; ok {
		existing.ConfirmedAt = c.ConfirmedAt
		existing.ConfirmedBy = c.ConfirmedBy
		r.s.confirmations[key] = existing
		return existing, nil
	}
	c.ID = r.s.nextID()
	c.PaidAt, c.PaidBy = nil, nil
	r.s.confirmations[key] = c
	return c, nil
}

func (r confirmationRepository) Delete(_ context.Context, periodID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := confirmationKey(periodID, userID)
	if _, ok := r.s.confirmations[key]; !ok {
		return payroll.ErrConfirmationNotFound
	}
	delete(r.s.confirmations, key)
	return nil
}

func (r confirmationRepository) SetPaid(_ context.Context, periodID, userID string, paidAt *time.Time, paidBy *string) (payroll.Confirmation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := confirmationKey(periodID, userID)
	c, ok := r.s.confirmations[key]
	if !ok {
		return payroll.Confirmation{}, payroll.ErrConfirmationNotFound
	}
	c.PaidAt, c.PaidBy = paidAt, paidBy
	r.s.confirmations[key] = c
	return c, nil
}

func (r confirmationRepository) CountPaid(_ context.Context, periodID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, c := range r.s.confirmations {
		if c.PeriodID == periodID && c.IsPaid() {
			n++
		}
	}
	return n, nil
}

// ========== SNAPSHOTS ==========

type snapshotRepository struct{ s *Store }

func (s *Store) Snapshots() payroll.SnapshotRepository { return snapshotRepository{s} }

func (r snapshotRepository) Get(_ context.Context, periodID string) (payroll.Snapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	snap, ok := r.s.snapshots[periodID]
	if !ok {
		return payroll.Snapshot{}, payroll.ErrSnapshotNotFound
	}
	return snap, nil
}

func (r snapshotRepository) Save(_ context.Context, snap payroll.Snapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.snapshots[snap.PeriodID] = snap
	return nil
}

func (r snapshotRepository) Delete(_ context.Context, periodID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.snapshots, periodID)
	return nil
}
