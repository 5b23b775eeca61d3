package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/isdelr/taskflow-be/internal/apperr"
	"github.com/isdelr/taskflow-be/internal/models"
)

// SQLiteUserStore implements UserStore on the shared sql.DB.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewUserStore creates a new SQLiteUserStore.
func NewUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

// scanUser reads a user row; hash controls whether password_hash is part
// of the column list.
func scanUser(scanner interface{ Scan(...interface{}) error }, hash bool) (models.User, error) {
	var user models.User
	var avatar sql.NullString

	var err error
	if hash {
		err = scanner.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &avatar, &user.CreatedAt)
	} else {
		err = scanner.Scan(&user.ID, &user.Name, &user.Email, &avatar, &user.CreatedAt)
	}
	if err != nil {
		return models.User{}, err
	}
	if avatar.Valid {
		user.AvatarURL = &avatar.String
	}
	return user, nil
}

// GetByID retrieves a single user by their ID, without the password hash.
func (s *SQLiteUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, avatar_url, created_at FROM users WHERE id = ?", id)
	user, err := scanUser(row, false)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.Newf(apperr.NotFound, "user with ID %s not found", id)
		}
		return models.User{}, apperr.Wrap(apperr.Storage, "query user", err)
	}
	return user, nil
}

// GetByEmail retrieves a single user by their email, including the password hash.
func (s *SQLiteUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, avatar_url, created_at FROM users WHERE email = ?", email)
	user, err := scanUser(row, true)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.Newf(apperr.NotFound, "user with email %s not found", email)
		}
		return models.User{}, apperr.Wrap(apperr.Storage, "query user", err)
	}
	return user, nil
}

// List retrieves all users, without password hashes.
func (s *SQLiteUserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, avatar_url, created_at FROM users ORDER BY created_at")
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "query users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows, false)
		if err != nil {
			return nil, apperr.Wrap(apperr.Storage, "scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "iterate users", err)
	}
	return users, nil
}

// Insert stores a new user row.
func (s *SQLiteUserStore) Insert(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, avatar_url, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.AvatarURL, user.CreatedAt)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "insert user", err)
	}
	return nil
}

// Update applies the non-nil fields of the patch and returns the updated user.
func (s *SQLiteUserStore) Update(ctx context.Context, id string, patch UserPatch) (models.User, error) {
	var sets []string
	var args []interface{}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.AvatarURL != nil {
		sets = append(sets, "avatar_url = ?")
		args = append(args, *patch.AvatarURL)
	}
	if len(sets) == 0 {
		return s.GetByID(ctx, id)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.Storage, "update user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.User{}, apperr.Newf(apperr.NotFound, "user with ID %s not found", id)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a user row.
func (s *SQLiteUserStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "delete user", err)
	}
	return nil
}
