package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/soujanya-006/intervuai/internal/filestore"
	"github.com/soujanya-006/intervuai/internal/model"
	appErr "github.com/soujanya-006/intervuai/internal/pkg/errors"
	"github.com/soujanya-006/intervuai/internal/pkg/timeutil"
	"github.com/soujanya-006/intervuai/internal/repo"
)

type ResumeService struct {
	files    *repo.FileRepo
	store    filestore.Store
	sessions *InterviewService
}

func NewResumeService(files *repo.FileRepo, store filestore.Store, sessions *InterviewService) *ResumeService {
	return &ResumeService{files: files, store: store, sessions: sessions}
}

// FileKey builds the storage key for a resume; the user id prefix keeps names
// from colliding across users.
func FileKey(userID int64, name string) string {
	return fmt.Sprintf("%d_%s", userID, name)
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

func (s *ResumeService) Upload(ctx context.Context, userID int64, name string, r io.Reader, size int64) (*model.ResumeFile, error) {
	name = sanitizeName(name)
	if name == "" {
		return nil, appErr.ErrInvalid
	}
	key := FileKey(userID, name)
	if err := s.store.Save(ctx, key, r, size); err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}
	// re-upload under the same name replaces the bytes and keeps the row
	file, err := s.files.GetByName(ctx, userID, name)
	if err != nil {
		if !appErr.IsNotFound(err) {
			return nil, err
		}
		file = &model.ResumeFile{
			UserID: userID,
			Name:   name,
			Path:   key,
			Ctime:  timeutil.NowUnix(),
		}
		if err := s.files.Create(ctx, file); err != nil {
			return nil, err
		}
	}
	// a fresh upload invalidates any live session built on the old bytes
	if s.sessions != nil {
		s.sessions.Invalidate(userID, name)
	}
	logutil.GetLogger(ctx).Info("resume uploaded",
		zap.Int64("user_id", userID),
		zap.String("name", name),
		zap.Int64("size", size),
	)
	return file, nil
}

func (s *ResumeService) List(ctx context.Context, userID int64) ([]model.ResumeFile, error) {
	return s.files.ListByUser(ctx, userID)
}

// Delete removes the metadata row and the stored object. A missing object is
// not an error; the row is the source of truth.
func (s *ResumeService) Delete(ctx context.Context, userID int64, name string) error {
	name = sanitizeName(name)
	if name == "" {
		return appErr.ErrInvalid
	}
	file, err := s.files.GetByName(ctx, userID, name)
	if err != nil {
		return err
	}
	if err := s.files.DeleteByName(ctx, userID, name); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, file.Path); err != nil {
		logutil.GetLogger(ctx).Warn("delete stored resume failed",
			zap.Int64("user_id", userID),
			zap.String("key", file.Path),
			zap.Error(err),
		)
	}
	if s.sessions != nil {
		s.sessions.Invalidate(userID, name)
	}
	return nil
}

func (s *ResumeService) OpenContent(ctx context.Context, userID int64, name string) (*model.ResumeFile, []byte, error) {
	name = sanitizeName(name)
	if name == "" {
		return nil, nil, appErr.ErrInvalid
	}
	file, err := s.files.GetByName(ctx, userID, name)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.store.Open(ctx, file.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored resume: %w", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, err
	}
	return file, data, nil
}
