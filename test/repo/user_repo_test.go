package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soujanya-006/intervuai/internal/model"
	appErr "github.com/soujanya-006/intervuai/internal/pkg/errors"
	"github.com/soujanya-006/intervuai/internal/pkg/timeutil"
	"github.com/soujanya-006/intervuai/internal/repo"
	"github.com/soujanya-006/intervuai/test/testutil"
)

func TestUserRepoCreateAndGet(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	user := &model.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		DateOfBirth:  "1990-12-10",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Ctime:        timeutil.NowUnix(),
	}
	require.NoError(t, users.Create(context.Background(), user))
	require.NotZero(t, user.ID)

	got, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "Ada", got.FirstName)

	byID, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", byID.Email)
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	first := &model.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		DateOfBirth:  "1990-12-10",
		Email:        "ada@example.com",
		PasswordHash: "hash-1",
		Ctime:        timeutil.NowUnix(),
	}
	require.NoError(t, users.Create(context.Background(), first))

	dup := &model.User{
		FirstName:    "Impostor",
		LastName:     "Lovelace",
		DateOfBirth:  "1991-01-01",
		Email:        "ada@example.com",
		PasswordHash: "hash-2",
		Ctime:        timeutil.NowUnix(),
	}
	err := users.Create(context.Background(), dup)
	require.ErrorIs(t, err, appErr.ErrConflict)

	got, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "hash-1", got.PasswordHash)
	require.Equal(t, "Ada", got.FirstName)
}

func TestUserRepoGetMissing(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	_, err := users.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	_, err = users.GetByID(context.Background(), 12345)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
