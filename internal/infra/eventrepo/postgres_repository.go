package eventrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/unievents/internal/domain/event"
)

const uniqueViolation = "23505"

const selectColumns = `
	SELECT id, title, club_name, club_slug, to_char(event_date, 'YYYY-MM-DD'),
	       start_time, end_time, description, location
	FROM events
`

// PostgresRepository persists events in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByDateRange returns events dated within [from, to), in date then creation order.
func (r *PostgresRepository) ListByDateRange(ctx context.Context, from, to string) ([]event.Event, error) {
	rows, err := r.pool.Query(ctx, selectColumns+`
		WHERE event_date >= $1::date AND event_date < $2::date
		ORDER BY event_date, created_at, id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListByClub returns every event owned by the named club.
func (r *PostgresRepository) ListByClub(ctx context.Context, clubName string) ([]event.Event, error) {
	rows, err := r.pool.Query(ctx, selectColumns+`
		WHERE club_name = $1
		ORDER BY event_date, start_time, id
	`, clubName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// Get fetches by primary key.
func (r *PostgresRepository) Get(ctx context.Context, id string) (event.Event, bool, error) {
	rows, err := r.pool.Query(ctx, selectColumns+`
		WHERE id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return event.Event{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return event.Event{}, false, rows.Err()
	}
	ev, err := scanEvent(rows)
	if err != nil {
		return event.Event{}, false, err
	}
	return ev, true, rows.Err()
}

// Create inserts a new event row.
func (r *PostgresRepository) Create(ctx context.Context, ev event.Event) (event.Event, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (id, title, club_name, club_slug, event_date, start_time, end_time, description, location)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9)
		RETURNING id, title, club_name, club_slug, to_char(event_date, 'YYYY-MM-DD'),
		          start_time, end_time, description, location
	`, ev.ID, ev.Title, ev.ClubName, ev.ClubSlug, ev.Date, ev.StartTime, ev.EndTime, ev.Description, ev.Location)
	created, err := scanEvent(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return event.Event{}, event.ErrDuplicateID
		}
		return event.Event{}, err
	}
	return created, nil
}

// Update rewrites the editable columns. Club ownership is not touched.
func (r *PostgresRepository) Update(ctx context.Context, ev event.Event) (event.Event, bool, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE events
		SET title = $2, event_date = $3::date, start_time = $4, end_time = $5,
		    description = $6, location = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, club_name, club_slug, to_char(event_date, 'YYYY-MM-DD'),
		          start_time, end_time, description, location
	`, ev.ID, ev.Title, ev.Date, ev.StartTime, ev.EndTime, ev.Description, ev.Location)
	if err != nil {
		return event.Event{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return event.Event{}, false, rows.Err()
	}
	updated, err := scanEvent(rows)
	if err != nil {
		return event.Event{}, false, err
	}
	return updated, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

type rowIterator interface {
	rowScanner
	Next() bool
	Err() error
}

func scanEvent(row rowScanner) (event.Event, error) {
	var ev event.Event
	if err := row.Scan(&ev.ID, &ev.Title, &ev.ClubName, &ev.ClubSlug, &ev.Date,
		&ev.StartTime, &ev.EndTime, &ev.Description, &ev.Location); err != nil {
		return event.Event{}, err
	}
	return ev, nil
}

func collectEvents(rows rowIterator) ([]event.Event, error) {
	out := make([]event.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

var _ event.Repository = (*PostgresRepository)(nil)
