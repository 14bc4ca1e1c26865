package service

import (
	"context"
	"strings"
	"time"

	"github.com/soujanya-006/intervuai/internal/model"
	appErr "github.com/soujanya-006/intervuai/internal/pkg/errors"
	"github.com/soujanya-006/intervuai/internal/pkg/jwt"
	"github.com/soujanya-006/intervuai/internal/pkg/password"
	"github.com/soujanya-006/intervuai/internal/pkg/timeutil"
	"github.com/soujanya-006/intervuai/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates an account. A duplicate email fails with ErrConflict and
// leaves the existing record untouched.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, dateOfBirth, email, plainPassword string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || plainPassword == "" {
		return nil, "", appErr.ErrInvalid
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		DateOfBirth:  strings.TrimSpace(dateOfBirth),
		Email:        email,
		PasswordHash: hash,
		Ctime:        timeutil.NowUnix(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials. Any mismatch, unknown email included, comes back
// as ErrUnauthorized without distinguishing the cause.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
