package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/mol-coffee/mol-backend-go/internal/domain/activity"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/validator"
	"github.com/mol-coffee/mol-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct{ n int }

func (c *countingCache) Invalidate(context.Context) error {
	c.n++
	return nil
}

func TestActivityService(t *testing.T) {
	ctx := context.Background()
	c := &countingCache{}
	svc := NewActivityService(memory.NewStore().Activities(), c)

	barista, err := svc.Create(ctx, activity.CreateActivityRequest{Name: "  Barista "})
	require.NoError(t, err)
	assert.Equal(t, "Barista", barista.Name)
	assert.True(t, barista.IsActive)

	_, err = svc.Create(ctx, activity.CreateActivityRequest{Name: "Barista"})
	assert.ErrorIs(t, err, activity.ErrActivityNameExists)

	_, err = svc.Create(ctx, activity.CreateActivityRequest{Name: " "})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	cashier, err := svc.Create(ctx, activity.CreateActivityRequest{Name: "Thu ngân"})
	require.NoError(t, err)

	renamed, err := svc.Update(ctx, activity.UpdateActivityRequest{ID: barista.ID, Name: "Pha chế"})
	require.NoError(t, err)
	assert.Equal(t, "Pha chế", renamed.Name)
	assert.Equal(t, 1, c.n)

	off := false
	_, err = svc.SetActive(ctx, cashier.ID, activity.SetActiveRequest{IsActive: &off})
	require.NoError(t, err)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, barista.ID, active[0].ID)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.SetActive(ctx, cashier.ID, activity.SetActiveRequest{})
	assert.True(t, errors.As(err, &verrs))

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, activity.ErrActivityNotFound)
}
