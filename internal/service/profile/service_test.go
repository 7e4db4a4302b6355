package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
	"github.com/mol-coffee/mol-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func as(p user.Profile) context.Context {
	return user.WithActor(context.Background(), user.Actor{UserID: p.ID, FullName: p.FullName, Role: p.Role})
}

func seed(t *testing.T) (*memory.Store, user.Profile, user.Profile) {
	t.Helper()
	store := memory.NewStore()
	admin, err := store.Profiles().Create(context.Background(), user.Profile{FullName: "Quản Lý", Email: "admin@mol.vn", Role: user.RoleAdmin, IsActive: true})
	require.NoError(t, err)
	emp, err := store.Profiles().Create(context.Background(), user.Profile{FullName: "Anh", Email: "anh@mol.vn", Role: user.RoleEmployee, IsActive: true})
	require.NoError(t, err)
	return store, admin, emp
}

func TestProfileService_Resolve(t *testing.T) {
	store, _, emp := seed(t)
	svc := NewProfileService(store.Profiles())

	actor, err := svc.Resolve(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Actor{UserID: emp.ID, FullName: "Anh", Role: user.RoleEmployee}, actor)

	_, err = svc.Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrProfileNotFound)

	inactive := false
	_, err = store.Profiles().Update(context.Background(), user.UpdateProfileRequest{ID: emp.ID, IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), emp.ID)
	assert.ErrorIs(t, err, user.ErrProfileInactive)
}

func TestProfileService_Me(t *testing.T) {
	store, _, emp := seed(t)
	svc := NewProfileService(store.Profiles())

	me, err := svc.Me(as(emp))
	require.NoError(t, err)
	assert.Equal(t, "anh@mol.vn", me.Email)

	_, err = svc.Me(context.Background())
	assert.ErrorIs(t, err, user.ErrActorMissing)
}

func TestProfileService_Create(t *testing.T) {
	store, admin, _ := seed(t)
	svc := NewProfileService(store.Profiles())

	created, err := svc.Create(as(admin), user.CreateProfileRequest{
		ID:       "5b0f3a52-6a3e-4c1e-9f3e-1d2a3b4c5d6e",
		FullName: "  Chi  ",
		Email:    "Chi@MoL.vn",
	})
	require.NoError(t, err)
	assert.Equal(t, "Chi", created.FullName)
	assert.Equal(t, "chi@mol.vn", created.Email)
	assert.Equal(t, string(user.RoleEmployee), created.Role)
	assert.True(t, created.IsActive)

	_, err = svc.Create(as(admin), user.CreateProfileRequest{
		ID:       "5b0f3a52-6a3e-4c1e-9f3e-1d2a3b4c5d6e",
		FullName: "Chi",
		Email:    "other@mol.vn",
	})
	assert.ErrorIs(t, err, user.ErrProfileExists)

	_, err = svc.Create(as(admin), user.CreateProfileRequest{ID: "nope", Email: "bad"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, map[string]string{
		"id":        "must be a valid UUID",
		"full_name": "full_name is required",
		"email":     "invalid email format",
	}, verrs.ToMap())
}

func TestProfileService_Update(t *testing.T) {
	store, admin, emp := seed(t)
	svc := NewProfileService(store.Profiles())

	role := string(user.RoleEmployee)
	_, err := svc.Update(as(admin), user.UpdateProfileRequest{ID: admin.ID, Role: &role})
	assert.ErrorIs(t, err, user.ErrCannotDemoteSelf)

	inactive := false
	_, err = svc.Update(as(admin), user.UpdateProfileRequest{ID: admin.ID, IsActive: &inactive})
	assert.ErrorIs(t, err, user.ErrCannotDemoteSelf)

	promoted := string(user.RoleAdmin)
	got, err := svc.Update(as(admin), user.UpdateProfileRequest{ID: emp.ID, Role: &promoted})
	require.NoError(t, err)
	assert.Equal(t, string(user.RoleAdmin), got.Role)

	_, err = svc.Update(as(admin), user.UpdateProfileRequest{ID: emp.ID})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
