package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/soujanya-006/intervuai/internal/model"
	appErr "github.com/soujanya-006/intervuai/internal/pkg/errors"
)

var fileColumns = []string{"file_id", "user_id", "file_name", "file_path", "ctime"}

type FileRepo struct {
	db *sqlx.DB
}

func NewFileRepo(db *sqlx.DB) *FileRepo {
	return &FileRepo{db: db}
}

func (r *FileRepo) Create(ctx context.Context, file *model.ResumeFile) error {
	data := map[string]interface{}{
		"user_id":   file.UserID,
		"file_name": file.Name,
		"file_path": file.Path,
		"ctime":     file.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("files", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	file.ID = id
	return nil
}

func (r *FileRepo) ListByUser(ctx context.Context, userID int64) ([]model.ResumeFile, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "file_id asc",
	}
	sqlStr, args, err := builder.BuildSelect("files", where, fileColumns)
	if err != nil {
		return nil, err
	}
	var files []model.ResumeFile
	if err := r.db.SelectContext(ctx, &files, sqlStr, args...); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *FileRepo) GetByName(ctx context.Context, userID int64, name string) (*model.ResumeFile, error) {
	where := map[string]interface{}{
		"user_id":   userID,
		"file_name": name,
	}
	sqlStr, args, err := builder.BuildSelect("files", where, fileColumns)
	if err != nil {
		return nil, err
	}
	var file model.ResumeFile
	if err := r.db.GetContext(ctx, &file, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *FileRepo) DeleteByName(ctx context.Context, userID int64, name string) error {
	where := map[string]interface{}{
		"user_id":   userID,
		"file_name": name,
	}
	sqlStr, args, err := builder.BuildDelete("files", where)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
