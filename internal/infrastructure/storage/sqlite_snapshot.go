package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
)

type sqliteSnapshotRepository struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepository SQLite asosidagi snapshot repository.
// dbPath ":memory:" bo'lsa papka yaratilmaydi.
func NewSQLiteSnapshotRepository(dbPath string) (repository.SnapshotRepository, func() error, error) {
	if dbPath == "" {
		return nil, nil, errors.New("db path bo'sh bo'lmasligi kerak")
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("db papkasini yaratib bo'lmadi: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite ochilmadi: %w", err)
	}
	// :memory: bazasi har bir ulanishda alohida, shuning uchun bitta ulanish
	db.SetMaxOpenConns(1)

	if err := createSnapshotSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return &sqliteSnapshotRepository{db: db}, db.Close, nil
}

func createSnapshotSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	collection TEXT PRIMARY KEY,
	version INTEGER NOT NULL,
	payload BLOB NOT NULL,
	saved_at TIMESTAMP NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema yaratib bo'lmadi: %w", err)
	}
	return nil
}

// Load kolleksiya snapshotini olish
func (s *sqliteSnapshotRepository) Load(ctx context.Context, collection entity.Collection) (*entity.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT collection, version, payload, saved_at FROM snapshots WHERE collection = ?`, string(collection))

	var (
		snap    entity.Snapshot
		name    string
		savedAt time.Time
	)
	if err := row.Scan(&name, &snap.Version, &snap.Payload, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, err
	}
	snap.Collection = entity.Collection(name)
	snap.SavedAt = savedAt

	return &snap, nil
}

// Save kolleksiyani to'liq qayta yozish
func (s *sqliteSnapshotRepository) Save(ctx context.Context, snapshot entity.Snapshot) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (collection, version, payload, saved_at) VALUES (?, ?, ?, ?)`,
		string(snapshot.Collection), snapshot.Version, snapshot.Payload, snapshot.SavedAt)
	return err
}
