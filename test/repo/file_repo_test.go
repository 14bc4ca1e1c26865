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

func TestFileRepoCRUD(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	files := repo.NewFileRepo(db)
	now := timeutil.NowUnix()
	file := &model.ResumeFile{UserID: 1, Name: "resume.pdf", Path: "1_resume.pdf", Ctime: now}
	require.NoError(t, files.Create(context.Background(), file))
	require.NotZero(t, file.ID)

	got, err := files.GetByName(context.Background(), 1, "resume.pdf")
	require.NoError(t, err)
	require.Equal(t, file.ID, got.ID)
	require.Equal(t, "1_resume.pdf", got.Path)

	list, err := files.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, files.DeleteByName(context.Background(), 1, "resume.pdf"))
	list, err = files.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 0)
}

func TestFileRepoScopedToUser(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	files := repo.NewFileRepo(db)
	now := timeutil.NowUnix()
	require.NoError(t, files.Create(context.Background(), &model.ResumeFile{UserID: 1, Name: "resume.pdf", Path: "1_resume.pdf", Ctime: now}))
	require.NoError(t, files.Create(context.Background(), &model.ResumeFile{UserID: 2, Name: "resume.pdf", Path: "2_resume.pdf", Ctime: now}))

	_, err := files.GetByName(context.Background(), 3, "resume.pdf")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	err = files.DeleteByName(context.Background(), 3, "resume.pdf")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	list, err := files.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "1_resume.pdf", list[0].Path)
}

func TestFileRepoListOrdering(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	files := repo.NewFileRepo(db)
	now := timeutil.NowUnix()
	require.NoError(t, files.Create(context.Background(), &model.ResumeFile{UserID: 1, Name: "a.pdf", Path: "1_a.pdf", Ctime: now}))
	require.NoError(t, files.Create(context.Background(), &model.ResumeFile{UserID: 1, Name: "b.pdf", Path: "1_b.pdf", Ctime: now}))

	list, err := files.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a.pdf", list[0].Name)
	require.Equal(t, "b.pdf", list[1].Name)
}
