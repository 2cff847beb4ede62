package sqlite_test

import (
	"context"
	"testing"

	"github.com/sammelband/sammelband"
	"github.com/sammelband/sammelband/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("creates user with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUserService(setupTestDB(t))

		user := &sammelband.User{Email: " Ada@Example.com ", PasswordHash: "hash"}
		err := svc.CreateUser(context.Background(), user)

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID, "ID should be generated")
		assert.Equal(t, "ada@example.com", user.Email, "email should be normalized")
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.UpdatedAt.IsZero())
	})

	t.Run("returns ECONFLICT for taken email", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUserService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.CreateUser(ctx, &sammelband.User{Email: "ada@example.com", PasswordHash: "hash"}))

		err := svc.CreateUser(ctx, &sammelband.User{Email: "ADA@example.com", PasswordHash: "other"})

		require.Error(t, err)
		assert.Equal(t, sammelband.ECONFLICT, sammelband.ErrorCode(err))
	})

	t.Run("returns error for invalid user", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUserService(setupTestDB(t))

		err := svc.CreateUser(context.Background(), &sammelband.User{Email: "not-an-email", PasswordHash: "hash"})

		require.Error(t, err)
		assert.Equal(t, sammelband.EINVALID, sammelband.ErrorCode(err))
	})
}

func TestUserService_FindUserByEmail(t *testing.T) {
	t.Parallel()

	t.Run("finds user ignoring case", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUserService(setupTestDB(t))
		ctx := context.Background()
		created := &sammelband.User{Email: "ada@example.com", PasswordHash: "hash"}
		require.NoError(t, svc.CreateUser(ctx, created))

		found, err := svc.FindUserByEmail(ctx, "Ada@Example.COM")

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "ada@example.com", found.Email)
		assert.Equal(t, "hash", found.PasswordHash)
		assert.False(t, found.Verified)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("returns ENOTFOUND for unknown email", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUserService(setupTestDB(t))

		_, err := svc.FindUserByEmail(context.Background(), "nobody@example.com")

		require.Error(t, err)
		assert.Equal(t, sammelband.ENOTFOUND, sammelband.ErrorCode(err))
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Parallel()

	t.Run("updates verified flag", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUserService(setupTestDB(t))
		ctx := context.Background()
		user := &sammelband.User{Email: "ada@example.com", PasswordHash: "hash"}
		require.NoError(t, svc.CreateUser(ctx, user))

		verified := true
		updated, err := svc.UpdateUser(ctx, user.ID, sammelband.UserUpdate{Verified: &verified})

		require.NoError(t, err)
		assert.True(t, updated.Verified)
		assert.Equal(t, "hash", updated.PasswordHash)

		found, err := svc.FindUserByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, found.Verified)
	})

	t.Run("updates password hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUserService(setupTestDB(t))
		ctx := context.Background()
		user := &sammelband.User{Email: "ada@example.com", PasswordHash: "hash"}
		require.NoError(t, svc.CreateUser(ctx, user))

		newHash := "new-hash"
		_, err := svc.UpdateUser(ctx, user.ID, sammelband.UserUpdate{PasswordHash: &newHash})
		require.NoError(t, err)

		found, err := svc.FindUserByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "new-hash", found.PasswordHash)
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUserService(setupTestDB(t))
		ctx := context.Background()
		user := &sammelband.User{Email: "ada@example.com", PasswordHash: "hash"}
		require.NoError(t, svc.CreateUser(ctx, user))

		empty := ""
		_, err := svc.UpdateUser(ctx, user.ID, sammelband.UserUpdate{PasswordHash: &empty})

		assert.Equal(t, sammelband.EINVALID, sammelband.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown user", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewUserService(setupTestDB(t))

		verified := true
		_, err := svc.UpdateUser(context.Background(), "missing", sammelband.UserUpdate{Verified: &verified})

		assert.Equal(t, sammelband.ENOTFOUND, sammelband.ErrorCode(err))
	})
}
