package model

type User struct {
	ID           int64  `db:"user_id" json:"id"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	DateOfBirth  string `db:"date_of_birth" json:"date_of_birth"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Ctime        int64  `db:"ctime" json:"ctime"`
}
