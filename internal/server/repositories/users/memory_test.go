package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
)

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = r.Create(ctx, &models.User{ID: "2", Name: "Bob", Email: "bob@x.io", CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.User{ID: "1", Name: "Ann", Email: "ann@x.io", PasswordHash: "h", CreatedAt: base})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{Email: "ann@x.io"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ann@x.io", list[0].Email)
	assert.Equal(t, "bob@x.io", list[1].Email)

	name := "Annie"
	got, err := r.Update(ctx, "ann@x.io", models.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)
	assert.Equal(t, "h", got.PasswordHash, "untouched field must survive")

	_, err = r.Update(ctx, "nobody@x.io", models.UserUpdate{Name: &name})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.Delete(ctx, "ann@x.io"))
	assert.ErrorIs(t, r.Delete(ctx, "ann@x.io"), common.ErrorNotFound)

	_, err = r.Get(ctx, "ann@x.io")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	_, err := r.Create(ctx, &models.User{Email: "ann@x.io", Name: "Ann"})
	require.NoError(t, err)

	got, err := r.Get(ctx, "ann@x.io")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := r.Get(ctx, "ann@x.io")
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.Name)
}
