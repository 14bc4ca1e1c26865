package model

// ResumeFile is the metadata row for an uploaded resume. The bytes themselves
// live in the file store under Path.
type ResumeFile struct {
	ID     int64  `db:"file_id" json:"id"`
	UserID int64  `db:"user_id" json:"user_id"`
	Name   string `db:"file_name" json:"name"`
	Path   string `db:"file_path" json:"path"`
	Ctime  int64  `db:"ctime" json:"ctime"`
}
