package knowledge

// In this file: the PostgreSQL depot store.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

//go:generate mockgen -source=store.go -destination=store_mock_test.go -package=knowledge Storer

// Storer is the depot storage interface used by the MCP server.
type Storer interface {
	AddDepot(ctx context.Context, d Depot) error
	RecordReading(ctx context.Context, depotID string, value float64) error
	AddNote(ctx context.Context, depotID, content string, embedding []float32) error
	Readings(ctx context.Context, depotID string, limit int) ([]Reading, error)
	Depots(ctx context.Context) ([]Depot, error)
	SearchNotes(ctx context.Context, embedding []float32, limit int) ([]NoteMatch, error)
}

var (
	// ErrDepotExists is returned when adding a depot with an existing ID.
	ErrDepotExists = errors.New("depot already exists")
	// ErrDepotNotFound is returned when the referenced depot is not
	// registered.
	ErrDepotNotFound = errors.New("depot not found")
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolation = "23505"

// Depot is one registered sorting depot.
type Depot struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Kind     string `db:"kind"`
	Location string `db:"location"`
}

// Reading is one recorded load reading.
type Reading struct {
	Value      float64   `db:"value"`
	RecordedAt time.Time `db:"recorded_at"`
}

// NoteMatch is one semantic search hit.  Distance is the cosine distance to
// the query vector, smaller is closer.
type NoteMatch struct {
	DepotName string    `db:"depot_name"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	Distance  float64   `db:"distance"`
}

// Store gives access to the depot tables.  It is safe for concurrent use.
type Store struct {
	db *sqlx.DB
}

var _ Storer = (*Store)(nil)

// NewStore creates a Store over an open database connection.  The caller
// owns the connection.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// AddDepot registers a new depot.  It returns ErrDepotExists if the ID is
// already taken.
func (s *Store) AddDepot(ctx context.Context, d Depot) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO depots (id, name, kind, location) VALUES ($1, $2, $3, $4)`,
		d.ID, d.Name, d.Kind, d.Location,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("depot %q: %w", d.ID, ErrDepotExists)
		}
		return fmt.Errorf("add depot %q: %w", d.ID, err)
	}
	return nil
}

// RecordReading stores a load reading for the depot.
func (s *Store) RecordReading(ctx context.Context, depotID string, value float64) error {
	if err := s.checkDepot(ctx, depotID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO depot_readings (depot_id, value) VALUES ($1, $2)`,
		depotID, value,
	)
	if err != nil {
		return fmt.Errorf("record reading for %q: %w", depotID, err)
	}
	return nil
}

// recordReadingAt stores a reading with an explicit timestamp.  Used by the
// seeder, which backfills a week of history.
func (s *Store) recordReadingAt(ctx context.Context, depotID string, value float64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO depot_readings (depot_id, value, recorded_at) VALUES ($1, $2, $3)`,
		depotID, value, at,
	)
	return err
}

// AddNote stores a note with its embedding vector.
func (s *Store) AddNote(ctx context.Context, depotID, content string, embedding []float32) error {
	if err := s.checkDepot(ctx, depotID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO depot_notes (depot_id, content, embedding) VALUES ($1, $2, $3)`,
		depotID, content, pgvector.NewVector(embedding),
	)
	if err != nil {
		return fmt.Errorf("add note for %q: %w", depotID, err)
	}
	return nil
}

// Readings returns the most recent readings for the depot, newest first.
func (s *Store) Readings(ctx context.Context, depotID string, limit int) ([]Reading, error) {
	var rr []Reading
	err := s.db.SelectContext(ctx, &rr, `
		SELECT value, recorded_at
		FROM depot_readings
		WHERE depot_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2`, depotID, limit)
	if err != nil {
		return nil, fmt.Errorf("readings for %q: %w", depotID, err)
	}
	return rr, nil
}

// Depots returns all registered depots ordered by name.
func (s *Store) Depots(ctx context.Context) ([]Depot, error) {
	var dd []Depot
	err := s.db.SelectContext(ctx, &dd,
		`SELECT id, name, kind, location FROM depots ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("depots: %w", err)
	}
	return dd, nil
}

// SearchNotes returns the notes closest to the query embedding, closest
// first.
func (s *Store) SearchNotes(ctx context.Context, embedding []float32, limit int) ([]NoteMatch, error) {
	var mm []NoteMatch
	err := s.db.SelectContext(ctx, &mm, `
		SELECT n.content, d.name AS depot_name, n.created_at,
		       (n.embedding <=> $1::vector) AS distance
		FROM depot_notes n
		JOIN depots d ON n.depot_id = d.id
		ORDER BY distance ASC
		LIMIT $2`, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return mm, nil
}

// checkDepot returns ErrDepotNotFound if the depot is not registered.
func (s *Store) checkDepot(ctx context.Context, depotID string) error {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM depots WHERE id = $1)`, depotID)
	if err != nil {
		return fmt.Errorf("check depot %q: %w", depotID, err)
	}
	if !exists {
		return fmt.Errorf("depot %q: %w", depotID, ErrDepotNotFound)
	}
	return nil
}

// clear removes every depot, reading and note.  Used by the seeder.
func (s *Store) clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `TRUNCATE depots, depot_readings, depot_notes CASCADE`)
	if err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}
