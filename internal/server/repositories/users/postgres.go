package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campushub/backend/internal/common"
	"github.com/campushub/backend/internal/dbx"
	"github.com/campushub/backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Settings live in their own table; users created before the settings
// backfill may not have a row yet, hence the left join and null scan.
const selectUser = `
		SELECT u.id, u.name, u.email, u.role, u.password,
		       s.is_default_password_changed, s.is_email_verified,
		       u.created_at
		FROM users u
		LEFT JOIN user_settings s ON s.user_id = u.id
`

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var defaultPasswordChanged, emailVerified sql.NullBool
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.PasswordHash,
		&defaultPasswordChanged, &emailVerified,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.Settings = models.UserSettings{
		IsDefaultPasswordChanged: defaultPasswordChanged.Valid && defaultPasswordChanged.Bool,
		IsEmailVerified:          emailVerified.Valid && emailVerified.Bool,
	}
	return user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := selectUser + `
		WHERE u.id = $1 AND u.is_deleted = false
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := selectUser + `
		WHERE u.email = $1 AND u.is_deleted = false
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `
		UPDATE users
		SET password = $2
		WHERE id = $1 AND is_deleted = false
	`
	res, err := r.db.ExecContext(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkDefaultPasswordChanged(ctx context.Context, userID string) error {
	query := `
		INSERT INTO user_settings (user_id, is_default_password_changed)
		VALUES ($1, true)
		ON CONFLICT (user_id) DO UPDATE SET is_default_password_changed = true
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
