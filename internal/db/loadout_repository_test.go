package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillcast/internal/model"
	"github.com/udisondev/skillcast/internal/testutil"
)

func TestLoadoutRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewLoadoutRepository(pool)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	t.Run("missing loadout", func(t *testing.T) {
		l, err := repo.Load(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, l)
	})

	t.Run("save and load", func(t *testing.T) {
		want := model.Loadout{
			ActorID:  1,
			Selected: 2,
			Slots:    [3]string{"slash", "", "fireball"},
		}
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	})

	t.Run("overwrite", func(t *testing.T) {
		want := model.Loadout{
			ActorID:  1,
			Selected: 0,
			Slots:    [3]string{"", "ice_lance", ""},
		}
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	})

	t.Run("empty slots", func(t *testing.T) {
		want := model.Loadout{ActorID: 2}
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	})

	t.Run("invalid selected slot", func(t *testing.T) {
		err := repo.Save(ctx, model.Loadout{ActorID: 3, Selected: 3})
		assert.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 1))

		got, err := repo.Load(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, got)

		require.NoError(t, repo.Delete(ctx, 1), "deleting twice is fine")
	})
}
