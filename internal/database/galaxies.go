package database

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pierrec/lz4/v4"
)

// ErrGalaxyNotFound is returned when a galaxy lookup fails.
var ErrGalaxyNotFound = errors.New("galaxy not found")

// ErrGalaxyExists is returned when saving a galaxy whose ID is taken.
var ErrGalaxyExists = errors.New("galaxy already exists")

// DefectRecord is one archived generation defect.
type DefectRecord struct {
	Attempt int
	Stage   string
	Message string
	Fatal   bool
}

// GalaxyRecord is an archived generation run.
type GalaxyRecord struct {
	ID          string
	Seed        int64
	Shape       string
	Size        string
	Valid       bool
	Attempts    int
	Fingerprint string
	StarCount   int
	CreatedAt   time.Time

	Defects []DefectRecord

	// Payload is the encoded galaxy document. It is stored lz4-compressed and
	// only loaded by GetGalaxy.
	Payload []byte
}

const galaxyColumns = "id, seed, shape, galaxy_size, valid, attempts, fingerprint, star_count, created_at"

// SaveGalaxy archives rec with its defects. An empty ID gets a new UUID and a
// zero CreatedAt the current time; both are written back to rec.
func (d *Database) SaveGalaxy(rec *GalaxyRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	payload, err := compress(rec.Payload)
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(d.qb.Build(
		"INSERT INTO galaxies ("+galaxyColumns+", payload) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		rec.ID, rec.Seed, rec.Shape, rec.Size, boolToInt(rec.Valid), rec.Attempts,
		rec.Fingerprint, rec.StarCount, rec.CreatedAt, payload,
	)
	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return ErrGalaxyExists
		}
		return fmt.Errorf("failed to save galaxy: %w", err)
	}

	insert := d.qb.Build("INSERT INTO defects (galaxy_id, attempt, stage, message, fatal) VALUES (?, ?, ?, ?, ?)")
	for _, def := range rec.Defects {
		if _, err := tx.Exec(insert, rec.ID, def.Attempt, def.Stage, def.Message, boolToInt(def.Fatal)); err != nil {
			return fmt.Errorf("failed to save defect: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit galaxy: %w", err)
	}
	return nil
}

// GetGalaxy loads a galaxy with its defects and decompressed payload.
func (d *Database) GetGalaxy(id string) (*GalaxyRecord, error) {
	var payload []byte
	row := d.db.QueryRow(d.qb.Build("SELECT "+galaxyColumns+", payload FROM galaxies WHERE id = ?"), id)
	rec, err := scanGalaxy(row, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGalaxyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get galaxy: %w", err)
	}

	if rec.Payload, err = decompress(payload); err != nil {
		return nil, err
	}
	if rec.Defects, err = d.defects(id); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListGalaxies returns archived runs without payloads, newest first. A
// non-positive limit returns every run.
func (d *Database) ListGalaxies(limit int) ([]*GalaxyRecord, error) {
	query := "SELECT " + galaxyColumns + " FROM galaxies ORDER BY created_at DESC, id"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return d.queryGalaxies(d.qb.Build(query), args...)
}

// FindByFingerprint returns the runs that produced the galaxy with
// fingerprint, oldest first.
func (d *Database) FindByFingerprint(fingerprint string) ([]*GalaxyRecord, error) {
	return d.queryGalaxies(d.qb.Build(
		"SELECT "+galaxyColumns+" FROM galaxies WHERE fingerprint = ? ORDER BY created_at, id"), fingerprint)
}

// DeleteGalaxy removes a galaxy and its defects.
func (d *Database) DeleteGalaxy(id string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// foreign keys are per connection in SQLite, so defects go explicitly
	if _, err := tx.Exec(d.qb.Build("DELETE FROM defects WHERE galaxy_id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete defects: %w", err)
	}
	result, err := tx.Exec(d.qb.Build("DELETE FROM galaxies WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete galaxy: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return ErrGalaxyNotFound
	}
	return tx.Commit()
}

func (d *Database) defects(id string) ([]DefectRecord, error) {
	rows, err := d.db.Query(d.qb.Build(
		"SELECT attempt, stage, message, fatal FROM defects WHERE galaxy_id = ? ORDER BY id"), id)
	if err != nil {
		return nil, fmt.Errorf("failed to query defects: %w", err)
	}
	defer rows.Close()

	var out []DefectRecord
	for rows.Next() {
		var def DefectRecord
		var fatal int
		if err := rows.Scan(&def.Attempt, &def.Stage, &def.Message, &fatal); err != nil {
			return nil, fmt.Errorf("failed to scan defect: %w", err)
		}
		def.Fatal = fatal != 0
		out = append(out, def)
	}
	return out, rows.Err()
}

func (d *Database) queryGalaxies(query string, args ...any) ([]*GalaxyRecord, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query galaxies: %w", err)
	}
	defer rows.Close()

	var out []*GalaxyRecord
	for rows.Next() {
		rec, err := scanGalaxy(rows, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to scan galaxy: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

// scanGalaxy reads the galaxyColumns, plus the payload when payload is set
func scanGalaxy(row scanner, payload *[]byte) (*GalaxyRecord, error) {
	var rec GalaxyRecord
	var valid int
	dest := []any{&rec.ID, &rec.Seed, &rec.Shape, &rec.Size, &valid, &rec.Attempts,
		&rec.Fingerprint, &rec.StarCount, &rec.CreatedAt}
	if payload != nil {
		dest = append(dest, payload)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	rec.Valid = valid != 0
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	return out, nil
}
