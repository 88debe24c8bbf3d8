// Package store persists merged well-log datasets in a local sqlite
// database so repeated ingests accumulate across runs, and keeps a journal
// of ingest batches.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hydrostrat/texprep/internal/texture"
)

type Store struct {
	*sql.DB
}

// Open opens (creating if needed) the sqlite database at path and runs any
// pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// AppendRows inserts canonical rows tagged with the ingest batch that
// produced them.
func (s *Store) AppendRows(rows []texture.Row, batchID string) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO well_log (batch_id, location, well_id, point, x, y, zland, depth, classes, variances, zones)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		classes, err := encodeFloats(r.Classes)
		if err != nil {
			return err
		}
		variances, err := encodeFloats(r.Variance)
		if err != nil {
			return err
		}
		var zones *string
		if r.Zones != nil {
			b, err := json.Marshal(r.Zones)
			if err != nil {
				return fmt.Errorf("failed to encode zones: %w", err)
			}
			z := string(b)
			zones = &z
		}
		if _, err := stmt.Exec(batchID, r.Location, r.WellID, r.Point, r.X, r.Y, r.Zland, r.Depth, classes, variances, zones); err != nil {
			return fmt.Errorf("failed to insert well log row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rows: %w", err)
	}
	return nil
}

// LoadTable rehydrates the full dataset in insertion order.
func (s *Store) LoadTable(schema texture.Schema) (*texture.Table, error) {
	t, err := texture.NewTable(schema)
	if err != nil {
		return nil, err
	}

	rows, err := s.Query(`
		SELECT location, well_id, point, x, y, zland, depth, classes, variances, zones
		FROM well_log
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query well logs: %w", err)
	}
	defer rows.Close()

	var loaded []texture.Row
	for rows.Next() {
		var r texture.Row
		var classes string
		var variances, zones *string
		if err := rows.Scan(&r.Location, &r.WellID, &r.Point, &r.X, &r.Y, &r.Zland, &r.Depth, &classes, &variances, &zones); err != nil {
			return nil, fmt.Errorf("failed to scan well log row: %w", err)
		}
		if r.Classes, err = decodeFloats(&classes); err != nil {
			return nil, err
		}
		if r.Variance, err = decodeFloats(variances); err != nil {
			return nil, err
		}
		if zones != nil {
			if err := json.Unmarshal([]byte(*zones), &r.Zones); err != nil {
				return nil, fmt.Errorf("failed to decode zones: %w", err)
			}
		}
		loaded = append(loaded, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating well logs: %w", err)
	}

	t.Restore(loaded)
	return t, nil
}

// Batch is one recorded ingest.
type Batch struct {
	ID         string
	SourceFile string
	Rows       int
	Wells      int
	CreatedAt  time.Time
}

// RecordBatch journals an ingest batch.
func (s *Store) RecordBatch(b Batch) error {
	_, err := s.Exec(`
		INSERT INTO ingest_batch (batch_id, source_file, row_count, well_count)
		VALUES (?, ?, ?, ?)
	`, b.ID, b.SourceFile, b.Rows, b.Wells)
	if err != nil {
		return fmt.Errorf("failed to record ingest batch: %w", err)
	}
	return nil
}

// Batches lists recorded ingests, oldest first.
func (s *Store) Batches() ([]Batch, error) {
	rows, err := s.Query(`
		SELECT batch_id, source_file, row_count, well_count, created_at
		FROM ingest_batch
		ORDER BY created_at ASC, batch_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		var created string
		if err := rows.Scan(&b.ID, &b.SourceFile, &b.Rows, &b.Wells, &created); err != nil {
			return nil, fmt.Errorf("failed to scan ingest batch: %w", err)
		}
		if ts, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
			b.CreatedAt = ts
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingest batches: %w", err)
	}
	return batches, nil
}

// encodeFloats marshals a value slice as JSON, mapping the missing marker
// to null (NaN is not representable in JSON). A nil slice encodes to a
// NULL column.
func encodeFloats(values []float64) (*string, error) {
	if values == nil {
		return nil, nil
	}
	nullable := make([]*float64, len(values))
	for i := range values {
		if !texture.IsMissing(values[i]) {
			v := values[i]
			nullable[i] = &v
		}
	}
	b, err := json.Marshal(nullable)
	if err != nil {
		return nil, fmt.Errorf("failed to encode values: %w", err)
	}
	s := string(b)
	return &s, nil
}

func decodeFloats(column *string) ([]float64, error) {
	if column == nil {
		return nil, nil
	}
	var nullable []*float64
	if err := json.Unmarshal([]byte(*column), &nullable); err != nil {
		return nil, fmt.Errorf("failed to decode values: %w", err)
	}
	values := make([]float64, len(nullable))
	for i, v := range nullable {
		if v == nil {
			values[i] = texture.Missing
		} else {
			values[i] = *v
		}
	}
	return values, nil
}
