package clubrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/unievents/internal/domain/club"
)

// PostgresRepository persists the club directory in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns the directory ordered by club id.
func (r *PostgresRepository) List(ctx context.Context) ([]club.Club, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, logo_url, leader_name, contact_email, purpose
		FROM clubs
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]club.Club, 0)
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetBySlug fetches one club.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (club.Club, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, logo_url, leader_name, contact_email, purpose
		FROM clubs
		WHERE slug = $1
		LIMIT 1
	`, slug)
	if err != nil {
		return club.Club{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return club.Club{}, false, rows.Err()
	}
	c, err := scanClub(rows)
	if err != nil {
		return club.Club{}, false, err
	}
	return c, true, rows.Err()
}

// UpdateLogo points the club at a new logo URL.
func (r *PostgresRepository) UpdateLogo(ctx context.Context, slug, logoURL string) (club.Club, bool, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE clubs SET logo_url = $2
		WHERE slug = $1
		RETURNING id, name, slug, logo_url, leader_name, contact_email, purpose
	`, slug, logoURL)
	if err != nil {
		return club.Club{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return club.Club{}, false, rows.Err()
	}
	c, err := scanClub(rows)
	if err != nil {
		return club.Club{}, false, err
	}
	return c, true, rows.Err()
}

// Upsert inserts a club or refreshes its descriptive columns. An uploaded logo is kept.
func (r *PostgresRepository) Upsert(ctx context.Context, c club.Club) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clubs (id, name, slug, logo_url, leader_name, contact_email, purpose)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name,
		    leader_name = EXCLUDED.leader_name,
		    contact_email = EXCLUDED.contact_email,
		    purpose = EXCLUDED.purpose
	`, c.ID, c.Name, c.Slug, c.LogoURL, c.LeaderName, c.ContactEmail, c.Purpose)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClub(row rowScanner) (club.Club, error) {
	var c club.Club
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.LogoURL, &c.LeaderName, &c.ContactEmail, &c.Purpose); err != nil {
		return club.Club{}, err
	}
	return c, nil
}

var _ club.Repository = (*PostgresRepository)(nil)
