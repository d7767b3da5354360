package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/repository/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepo(t *testing.T) (context.Context, UserRepository) {
	t.Helper()

	ctx := context.Background()

	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.Init(ctx))

	t.Cleanup(func() {
		_ = st.Connection.Close()
	})

	return ctx, NewUserRepository(st.Connection)
}

func TestUserRepository_SaveAndFind(t *testing.T) {
	t.Run("Saved user is found by fid", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		// Given: a saved profile
		user := &entity.User{FID: "42", Username: "alice", DisplayName: "Alice"}
		require.NoError(t, userRepo.Save(ctx, user))

		// When: looking it up
		found, err := userRepo.Find(ctx, "42")
		require.NoError(t, err)

		// Then: the profile matches
		require.Equal(t, user, found)
	})

	t.Run("Save replaces an existing profile", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		// Given: a profile saved twice with different names
		require.NoError(t, userRepo.Save(ctx, &entity.User{FID: "42", Username: "alice"}))
		require.NoError(t, userRepo.Save(ctx, &entity.User{FID: "42", Username: "alice2"}))

		// When: looking it up
		found, err := userRepo.Find(ctx, "42")
		require.NoError(t, err)

		// Then: the latest profile wins
		assert.Equal(t, "alice2", found.Username)
	})

	t.Run("Error on unknown fid", func(t *testing.T) {
		ctx, userRepo := newUserRepo(t)

		// When: looking up a profile that was never saved
		_, err := userRepo.Find(ctx, "9999999")

		// Then: an ErrNotFound error is returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
