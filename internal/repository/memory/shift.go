package memory

import (
	"context"
	"sort"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
)

type shiftRepository struct{ s *Store }

func (s *Store) Shifts() shift.ShiftRepository { return shiftRepository{s} }

func (r shiftRepository) GetByID(_ context.Context, id string) (shift.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sh, ok := r.s.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return sh, nil
}

// record joins names the way the SQL repository does. Callers hold mu.
func (r shiftRepository) record(sh shift.Shift) shift.Record {
	return shift.Record{
		Shift:        sh,
		EmployeeName: r.s.profiles[sh.EmployeeID].FullName,
		ActivityName: r.s.activities[sh.ActivityID].Name,
	}
}

func (r shiftRepository) GetRecord(_ context.Context, id string) (shift.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sh, ok := r.s.shifts[id]
	if !ok {
		return shift.Record{}, shift.ErrShiftNotFound
	}
	return r.record(sh), nil
}

func (r shiftRepository) ListRecords(_ context.Context, filter shift.Filter) ([]shift.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]shift.Record, 0)
	for _, sh := range r.s.shifts {
		if sh.StartAt.Before(filter.StartFrom) || !sh.StartAt.Before(filter.StartUntil) {
			continue
		}
		if filter.EmployeeID != nil && sh.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r.record(sh))
	}
	sort.Slice(out, func(i, j int) bool { return lessShift(out[i].Shift, out[j].Shift) })
	return out, nil
}

func (r shiftRepository) ListForEmployee(_ context.Context, employeeID string, from, until time.Time) ([]shift.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]shift.Shift, 0)
	for _, sh := range r.s.shifts {
		if sh.EmployeeID == employeeID && !sh.StartAt.Before(from) && sh.StartAt.Before(until) {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessShift(out[i], out[j]) })
	return out, nil
}

func (r shiftRepository) ListEmployeeIDs(_ context.Context, from, until time.Time) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, sh := range r.s.shifts {
		if sh.StartAt.Before(from) || !sh.StartAt.Before(until) || seen[sh.EmployeeID] {
			continue
		}
		seen[sh.EmployeeID] = true
		out = append(out, sh.EmployeeID)
	}
	sort.Strings(out)
	return out, nil
}

// check mirrors the foreign keys and interval constraint. Callers hold mu.
func (r shiftRepository) check(sh shift.Shift) error {
	if _, ok := r.s.profiles[sh.EmployeeID]; !ok {
		return shift.ErrEmployeeNotFound
	}
	if _, ok := r.s.activities[sh.ActivityID]; !ok {
		return shift.ErrActivityNotFound
	}
	if !sh.EndAt.After(sh.StartAt) {
		return shift.ErrInvalidInterval
	}
	return nil
}

func (r shiftRepository) Create(_ context.Context, sh shift.Shift) (shift.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.check(sh); err != nil {
		return shift.Shift{}, err
	}
	sh.ID = r.s.nextID()
	sh.CreatedAt = r.s.now()
	sh.UpdatedAt = sh.CreatedAt
	r.s.shifts[sh.ID] = sh
	return sh, nil
}

func (r shiftRepository) Update(_ context.Context, sh shift.Shift) (shift.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.shifts[sh.ID]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	if err := r.check(sh); err != nil {
		return shift.Shift{}, err
	}
	sh.CreatedAt = existing.CreatedAt
	sh.UpdatedAt = r.s.now()
	r.s.shifts[sh.ID] = sh
	return sh, nil
}

func (r shiftRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(r.s.shifts, id)
	return nil
}

func lessShift(a, b shift.Shift) bool {
	if !a.StartAt.Equal(b.StartAt) {
		return a.StartAt.Before(b.StartAt)
	}
	return a.ID < b.ID
}
