package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/schemagraph/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on resources.kind
const currentSchemaVersion = 1

const (
	metaBaseIRI = "base_iri"
	metaDigest  = "digest"
)

// Journal persists store payloads in a SQLite database.
type Journal struct {
	db *sql.DB
}

// OpenJournal creates or opens the database at path and applies the pragmas
// and migrations. It is idempotent.
func OpenJournal(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < 1 {
		if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_resources_kind ON resources(kind)`); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// Save replaces the stored payload with the state of s in one transaction.
func (j *Journal) Save(ctx context.Context, s *Store) error {
	p := s.Export()
	digest, err := ir.Digest(p.Resources)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, stmt := range []string{"DELETE FROM operations", "DELETE FROM resources", "DELETE FROM meta"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}

	for i, op := range p.Operations {
		record, err := ir.MarshalCanonical(op)
		if err != nil {
			return fmt.Errorf("save operation %s: %w", op.IRI(), err)
		}
		kind, _ := ir.PrimaryTag(op.Types())
		_, err = tx.ExecContext(ctx, `
			INSERT INTO operations (seq, iri, parent, kind, record)
			VALUES (?, ?, ?, ?, ?)
		`, i+1, op.IRI(), nullable(op.Parent()), string(kind), string(record))
		if err != nil {
			return fmt.Errorf("save operation %s: %w", op.IRI(), err)
		}
	}

	for _, iri := range sortedKeys(p.Resources) {
		res := p.Resources[iri]
		record, err := ir.MarshalCanonical(res)
		if err != nil {
			return fmt.Errorf("save resource %s: %w", iri, err)
		}
		kind, _ := ir.PrimaryTag(res.Types())
		_, err = tx.ExecContext(ctx, `
			INSERT INTO resources (iri, kind, record) VALUES (?, ?, ?)
		`, iri, string(kind), string(record))
		if err != nil {
			return fmt.Errorf("save resource %s: %w", iri, err)
		}
	}

	for key, value := range map[string]string{metaBaseIRI: s.BaseIRI(), metaDigest: digest} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("save meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save: commit: %w", err)
	}
	return nil
}

// Load reads the stored payload. An empty database yields an empty payload.
func (j *Journal) Load(ctx context.Context) (Payload, error) {
	p := Payload{Resources: map[string]ir.Resource{}}

	rows, err := j.db.QueryContext(ctx, `SELECT record FROM operations ORDER BY seq ASC`)
	if err != nil {
		return p, fmt.Errorf("load operations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return p, fmt.Errorf("load operations: %w", err)
		}
		op, err := ir.UnmarshalOperation([]byte(record))
		if err != nil {
			return p, fmt.Errorf("load operations: %w", err)
		}
		p.Operations = append(p.Operations, op)
	}
	if err := rows.Err(); err != nil {
		return p, fmt.Errorf("load operations: %w", err)
	}

	resRows, err := j.db.QueryContext(ctx, `SELECT iri, record FROM resources ORDER BY iri ASC`)
	if err != nil {
		return p, fmt.Errorf("load resources: %w", err)
	}
	defer resRows.Close()
	for resRows.Next() {
		var iri, record string
		if err := resRows.Scan(&iri, &record); err != nil {
			return p, fmt.Errorf("load resources: %w", err)
		}
		res, err := ir.UnmarshalResource([]byte(record))
		if err != nil {
			return p, fmt.Errorf("load resource %s: %w", iri, err)
		}
		p.Resources[iri] = res
	}
	if err := resRows.Err(); err != nil {
		return p, fmt.Errorf("load resources: %w", err)
	}
	return p, nil
}

// LoadStore opens the stored payload as a store. When the journal is empty
// the store starts empty with baseIRI; otherwise the saved base IRI wins.
func (j *Journal) LoadStore(ctx context.Context, baseIRI string, opts ...Option) (*Store, error) {
	p, err := j.Load(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := j.meta(ctx, metaBaseIRI)
	if err != nil {
		return nil, err
	}
	if saved != "" {
		baseIRI = saved
	}
	s := New(baseIRI, opts...)
	if err := s.Import(p); err != nil {
		return nil, err
	}
	return s, nil
}

// SavedDigest returns the resource digest recorded by the last Save, or ""
// for an empty journal.
func (j *Journal) SavedDigest(ctx context.Context) (string, error) {
	return j.meta(ctx, metaDigest)
}

func (j *Journal) meta(ctx context.Context, key string) (string, error) {
	var value string
	err := j.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read meta %s: %w", key, err)
	}
	return value, nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (j *Journal) verifyPragma(name, expected string) error {
	var value string
	if err := j.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
