package archive

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/MeKo-Tech/colorblend/internal/blend"
)

// ErrNotFound is returned when the archive has no swatch for a mode.
var ErrNotFound = errors.New("swatch not found")

// Reader reads swatches from an archive.
type Reader struct {
	db   *sql.DB
	path string
}

// OpenReader opens an archive read-only.
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='swatches'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("database does not contain swatches table")
	}

	return &Reader{db: db, path: path}, nil
}

// ReadSwatch returns the decompressed PNG stored for mode.
func (r *Reader) ReadSwatch(mode blend.Mode) ([]byte, error) {
	var compressed []byte
	err := r.db.QueryRow("SELECT data FROM swatches WHERE mode=?", mode.String()).Scan(&compressed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, mode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query swatch: %w", err)
	}

	data, err := gzipDecompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress swatch %s: %w", mode, err)
	}
	return data, nil
}

// Modes lists the modes present in the archive in declaration order.
// Rows with names the current build does not know are skipped.
func (r *Reader) Modes() ([]blend.Mode, error) {
	rows, err := r.db.Query("SELECT mode FROM swatches")
	if err != nil {
		return nil, fmt.Errorf("failed to query modes: %w", err)
	}
	defer rows.Close()

	present := make(map[blend.Mode]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan mode row: %w", err)
		}
		if m, err := blend.ParseMode(name); err == nil {
			present[m] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating modes: %w", err)
	}

	var modes []blend.Mode
	for _, m := range blend.Modes() {
		if present[m] {
			modes = append(modes, m)
		}
	}
	return modes, nil
}

// Metadata reads the archive metadata.
func (r *Reader) Metadata() (Metadata, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("error iterating metadata: %w", err)
	}

	return metadataFromMap(values), nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
