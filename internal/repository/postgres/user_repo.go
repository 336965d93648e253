package postgres

import (
	"context"

	"github.com/realworld-persistence/internal/database"
	"github.com/realworld-persistence/internal/models"
	"github.com/realworld-persistence/internal/repository"
)

const userColumns = `id, email, username, password, bio, image_url, created_at`

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) repository.UserRepository {
	return &userRepo{db: db}
}

// BatchInsert inserts users using PostgreSQL COPY
func (r *userRepo) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	return copyInsert(ctx, r.db, repository.Users,
		[]string{"id", "email", "username", "password", "bio", "image_url", "created_at"},
		len(users),
		func(i int) []any {
			u := users[i]
			return []any{u.ID, u.Email, u.Username, u.Password, u.Bio, u.ImageURL, u.CreatedAt}
		},
	)
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return one(ctx, r.db, `SELECT `+userColumns+` FROM users WHERE id = $1`, scanUser, id)
}

// GetByEmail retrieves a user by email
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return one(ctx, r.db, `SELECT `+userColumns+` FROM users WHERE email = $1`, scanUser, email)
}

// GetByUsername retrieves a user by username
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return one(ctx, r.db, `SELECT `+userColumns+` FROM users WHERE username = $1`, scanUser, username)
}

// EmailExists checks if a user with the given email exists
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email)
}

// UsernameExists checks if a user with the given username exists
func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.db, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username)
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM users")
}

func scanUser(s scanner) (*models.User, error) {
	var user models.User
	err := s.Scan(
		&user.ID, &user.Email, &user.Username, &user.Password,
		&user.Bio, &user.ImageURL, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
