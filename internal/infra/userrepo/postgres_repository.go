package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/unievents/internal/domain/auth"
)

const userColumns = `id, username, email, password_hash, club_name, COALESCE(club_slug, ''), role, created_at`

// PostgresRepository persists users in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new user row. An empty club slug is stored as NULL.
func (r *PostgresRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, club_name, club_slug, role)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING `+userColumns,
		user.Username, user.Email, user.PasswordHash, user.ClubName, user.ClubSlug, user.Role)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return auth.User{}, auth.ErrEmailExists
		}
		return auth.User{}, err
	}
	return created, nil
}

// GetByEmail fetches a user by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
		LIMIT 1
	`, email)
	if err != nil {
		return auth.User{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return auth.User{}, false, rows.Err()
	}
	user, err := scanUser(rows)
	if err != nil {
		return auth.User{}, false, err
	}
	return user, true, rows.Err()
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (auth.User, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return auth.User{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return auth.User{}, false, rows.Err()
	}
	user, err := scanUser(rows)
	if err != nil {
		return auth.User{}, false, err
	}
	return user, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (auth.User, error) {
	var user auth.User
	var created time.Time
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.ClubName, &user.ClubSlug, &user.Role, &created); err != nil {
		return auth.User{}, err
	}
	user.CreatedAt = created.UTC()
	return user, nil
}

var _ auth.Repository = (*PostgresRepository)(nil)
