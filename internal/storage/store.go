package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/san-kum/wellview/internal/field"
)

var ErrNotFound = errors.New("storage: snapshot not found")

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    wells      INTEGER NOT NULL,
    body       TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS snapshots_created ON snapshots (created_at);
`

// Snapshot describes a stored field without its body.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Wells     int       `json:"wells"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps field snapshots in a sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores f under name and returns the new snapshot ID.
func (s *Store) Save(ctx context.Context, name string, f *field.Field) (string, error) {
	body, err := field.Encode(f, ".json")
	if err != nil {
		return "", err
	}
	if name == "" {
		name = f.Name
	}

	id := uuid.NewString()
	created := time.Now().UTC().Format(timeLayout)
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO snapshots (id, name, wells, body, created_at)
        VALUES (?, ?, ?, ?, ?)
    `, id, name, len(f.Wells), string(body), created)
	if err != nil {
		return "", fmt.Errorf("storage: insert snapshot: %w", err)
	}
	return id, nil
}

// Load returns the field stored under id, or the latest snapshot whose
// name matches id.
func (s *Store) Load(ctx context.Context, id string) (*field.Field, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT body FROM snapshots
        WHERE id = ? OR name = ?
        ORDER BY created_at DESC, rowid DESC
        LIMIT 1
    `, id, id)

	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return field.Decode([]byte(body), ".json")
}

// List returns every snapshot, newest first.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, wells, created_at
        FROM snapshots
        ORDER BY created_at DESC, rowid DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snaps := make([]Snapshot, 0)
	for rows.Next() {
		var (
			snap    Snapshot
			created string
		)
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Wells, &created); err != nil {
			return nil, err
		}
		snap.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("storage: snapshot %s: %w", snap.ID, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
