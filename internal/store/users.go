package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventify/internal/status"
	"eventify/models"

	"github.com/pocketbase/dbx"
)

func (s *Store) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := s.db.Select("*").From("users").
		Where(dbx.HashExp{"id": id}).
		WithContext(ctx).
		One(user)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.Select("*").From("users").
		Where(dbx.HashExp{"email": email}).
		WithContext(ctx).
		One(user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", email, status.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) exists(ctx context.Context, table string, where dbx.Expression) (bool, error) {
	var count int
	err := s.db.Select("COUNT(*)").From(table).Where(where).WithContext(ctx).Row(&count)
	return count > 0, err
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "users", dbx.HashExp{"email": email})
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "users", dbx.HashExp{"username": username})
}

// CreateUser inserts u and fills its ID and CreatedAt.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.CreatedAt = now()
	res, err := s.db.Insert("users", dbx.Params{
		"email":         u.Email,
		"username":      u.Username,
		"password_hash": u.PasswordHash,
		"college_id":    u.CollegeID,
		"created_at":    u.CreatedAt,
	}).WithContext(ctx).Execute()

	switch {
	case isUniqueViolation(err, "users.email"):
		return status.ErrDuplicateEmail
	case isUniqueViolation(err, "users.username"):
		return status.ErrDuplicateUsername
	case err != nil:
		return fmt.Errorf("insert user: %w", err)
	}

	u.ID, err = res.LastInsertId()
	return err
}
