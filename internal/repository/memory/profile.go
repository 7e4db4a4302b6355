package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
)

type profileRepository struct{ s *Store }

func (s *Store) Profiles() user.ProfileRepository { return profileRepository{s} }

func (r profileRepository) GetByID(_ context.Context, id string) (user.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrProfileNotFound
	}
	return p, nil
}

func (r profileRepository) GetByEmail(_ context.Context, email string) (user.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.profiles {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return user.Profile{}, user.ErrProfileNotFound
}

func (r profileRepository) List(_ context.Context, filter user.ProfileFilter) ([]user.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]user.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		if filter.Role != nil && p.Role != *filter.Role {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r profileRepository) Create(_ context.Context, p user.Profile) (user.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.profiles {
		if strings.EqualFold(existing.Email, p.Email) {
			return user.Profile{}, user.ErrProfileEmailExists
		}
	}
	if p.ID == "" {
		p.ID = r.s.nextID()
	}
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.profiles[p.ID] = p
	return p, nil
}

func (r profileRepository) Update(_ context.Context, req user.UpdateProfileRequest) (user.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[req.ID]
	if !ok {
		return user.Profile{}, user.ErrProfileNotFound
	}
	if req.FullName != nil {
		p.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		p.Role = user.Role(*req.Role)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = r.s.now()
	r.s.profiles[p.ID] = p
	return p, nil
}
