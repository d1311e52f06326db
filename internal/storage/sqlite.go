// Package storage provides SQLite-based persistence for saved levels.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Level text is stored zstd-compressed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrLevelNotFound is returned when no level has the requested name.
var ErrLevelNotFound = errors.New("storage: level not found")

// Store manages the SQLite database connection for the level library.
type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// LevelInfo describes a stored level without its contents.
type LevelInfo struct {
	ID         int64
	Name       string
	Width      int
	Height     int
	Layers     int
	RawSize    int // Length of the level text in bytes
	StoredSize int // Length of the compressed blob in bytes
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LevelRecord is a stored level including its decoded level text.
type LevelRecord struct {
	LevelInfo
	Text string
}

// LibraryStats contains aggregated statistics for the library.
type LibraryStats struct {
	Count       int
	RawBytes    int64
	StoredBytes int64
	LastUpdated time.Time
}

// Option configures a Store.
type Option func(*options)

type options struct {
	level zstd.EncoderLevel
}

// WithCompression sets the zstd level by name: fastest, default, better
// or best. Unknown names keep the default.
func WithCompression(name string) Option {
	return func(o *options) {
		if ok, level := zstd.EncoderLevelFromString(name); ok {
			o.level = level
		}
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
	o := options{level: zstd.SpeedDefault}
	for _, opt := range opts {
		opt(&o)
	}

	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// Zero frames keep empty levels as a non-NULL blob
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(o.level), zstd.WithZeroFrames(true))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot create compressor: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("storage: cannot create decompressor: %w", err)
	}

	store := &Store{db: db, enc: enc, dec: dec}

	// Run migrations
	if err := store.migrate(); err != nil {
		store.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS levels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			layers INTEGER NOT NULL,
			data BLOB NOT NULL,
			raw_size INTEGER NOT NULL DEFAULT 0,
			stored_size INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_levels_updated ON levels(updated_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.dec != nil {
		s.dec.Close()
	}
	if s.enc != nil {
		s.enc.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLevel stores level text under name, replacing any level with the
// same name. Returns the ID of the record.
func (s *Store) SaveLevel(name string, width, height, layers int, text string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("storage: cannot save level: empty name")
	}

	blob := s.enc.EncodeAll([]byte(text), nil)

	_, err := s.db.Exec(
		`INSERT INTO levels (name, width, height, layers, data, raw_size, stored_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   width = excluded.width,
		   height = excluded.height,
		   layers = excluded.layers,
		   data = excluded.data,
		   raw_size = excluded.raw_size,
		   stored_size = excluded.stored_size,
		   updated_at = CURRENT_TIMESTAMP`,
		name, width, height, layers, blob, len(text), len(blob),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level: %w", err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM levels WHERE name = ?", name).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get level ID: %w", err)
	}

	return id, nil
}

// LoadLevel retrieves a level and decompresses its text.
func (s *Store) LoadLevel(name string) (*LevelRecord, error) {
	var rec LevelRecord
	var blob []byte
	var createdAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT id, name, width, height, layers, data, raw_size, stored_size, created_at, updated_at
		 FROM levels
		 WHERE name = ?`,
		name,
	).Scan(
		&rec.ID,
		&rec.Name,
		&rec.Width,
		&rec.Height,
		&rec.Layers,
		&blob,
		&rec.RawSize,
		&rec.StoredSize,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level: %w", err)
	}

	text, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot decompress level %s: %w", name, err)
	}
	rec.Text = string(text)
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)

	return &rec, nil
}

// ListLevels returns every stored level ordered by name.
func (s *Store) ListLevels() ([]LevelInfo, error) {
	rows, err := s.db.Query(
		`SELECT id, name, width, height, layers, raw_size, stored_size, created_at, updated_at
		 FROM levels
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var infos []LevelInfo
	for rows.Next() {
		var info LevelInfo
		var createdAt, updatedAt any
		if err := rows.Scan(
			&info.ID,
			&info.Name,
			&info.Width,
			&info.Height,
			&info.Layers,
			&info.RawSize,
			&info.StoredSize,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		info.UpdatedAt = parseTime(updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteLevel removes a level by name.
func (s *Store) DeleteLevel(name string) error {
	res, err := s.db.Exec("DELETE FROM levels WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete level: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete level: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrLevelNotFound, name)
	}
	return nil
}

// Stats retrieves aggregated statistics for the library.
func (s *Store) Stats() (*LibraryStats, error) {
	stats := &LibraryStats{}
	var lastUpdated any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(raw_size), 0), COALESCE(SUM(stored_size), 0), MAX(updated_at)
		 FROM levels`,
	).Scan(&stats.Count, &stats.RawBytes, &stats.StoredBytes, &lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get library stats: %w", err)
	}
	stats.LastUpdated = parseTime(lastUpdated)

	return stats, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
