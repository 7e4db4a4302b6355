// Package memory keeps every repository in process memory. It backs service
// tests and local runs without PostgreSQL; it is not transactional.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/mol-coffee/mol-backend-go/internal/domain/rate"
	"github.com/mol-coffee/mol-backend-go/internal/domain/shift"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
)

// Store holds the rows of all repositories behind one lock.
type Store struct {
	mu  sync.RWMutex
	seq int
	now func() time.Time

	profiles      map[string]user.Profile
	activities    map[string]activity.Activity
	rates         map[string]rate.Rate
	shifts        map[string]shift.Shift
	periods       map[string]payroll.Period
	confirmations map[string]payroll.Confirmation
	snapshots     map[string]payroll.Snapshot

	gate *periodGate
}

func NewStore() *Store {
	s := &Store{
		now:           time.Now,
		profiles:      make(map[string]user.Profile),
		activities:    make(map[string]activity.Activity),
		rates:         make(map[string]rate.Rate),
		shifts:        make(map[string]shift.Shift),
		periods:       make(map[string]payroll.Period),
		confirmations: make(map[string]payroll.Confirmation),
		snapshots:     make(map[string]payroll.Snapshot),
	}
	s.gate = &periodGate{s: s, locks: make(map[int]*sync.RWMutex)}
	return s
}

// SetClock overrides the timestamps written on create and update.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// nextID returns a UUID-shaped, monotonically increasing identifier. Callers hold mu.
func (s *Store) nextID() string {
	s.seq++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", s.seq)
}
