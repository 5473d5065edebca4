// Package catalog exports a parsed schema to a SQLite database so it can be
// queried with ordinary SQL.
//
//	SELECT t.name, count(f.name)
//	  FROM tables t LEFT JOIN fields f ON f.table_name = t.name
//	 GROUP BY t.name ORDER BY t.position;
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/simonhull/dfdoc/internal/schema"
)

const ddl = `
CREATE TABLE sequences (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL
);
CREATE TABLE tables (
	position    INTEGER PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE fields (
	table_name   TEXT NOT NULL REFERENCES tables(name),
	position     INTEGER NOT NULL,
	name         TEXT NOT NULL,
	type         TEXT NOT NULL,
	column_label TEXT NOT NULL DEFAULT '',
	help         TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (table_name, position)
);
`

// Open opens an existing catalog.
func Open(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	return db, nil
}

// Export recreates the catalog at path from s. Positions start at 1 and
// follow schema order. The catalog is built in path+".tmp" and renamed over
// path only after it is complete, so a failed export leaves the previous
// catalog in place.
func Export(ctx context.Context, path string, s *schema.Schema) (err error) {
	tmp := path + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing stale catalog: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err := build(ctx, tmp, s); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing catalog: %w", err)
	}
	return nil
}

func build(ctx context.Context, path string, s *schema.Schema) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("creating catalog: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("creating catalog tables: %w", err)
	}
	if err := insertAll(ctx, tx, s); err != nil {
		return err
	}
	return tx.Commit()
}

func insertAll(ctx context.Context, tx *sql.Tx, s *schema.Schema) error {
	seqStmt, err := tx.PrepareContext(ctx, `INSERT INTO sequences (position, name) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer seqStmt.Close()

	for i, name := range s.Sequences {
		if _, err := seqStmt.ExecContext(ctx, i+1, name); err != nil {
			return fmt.Errorf("inserting sequence %q: %w", name, err)
		}
	}

	tableStmt, err := tx.PrepareContext(ctx, `INSERT INTO tables (position, name, description) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer tableStmt.Close()

	fieldStmt, err := tx.PrepareContext(ctx, `INSERT INTO fields (table_name, position, name, type, column_label, help) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer fieldStmt.Close()

	for i, t := range s.Tables() {
		if _, err := tableStmt.ExecContext(ctx, i+1, t.Name, t.Description); err != nil {
			return fmt.Errorf("inserting table %q: %w", t.Name, err)
		}
		for j, f := range t.Fields {
			if _, err := fieldStmt.ExecContext(ctx, t.Name, j+1, f.Name, f.Type, f.ColumnLabel, f.Help); err != nil {
				return fmt.Errorf("inserting field %q of %q: %w", f.Name, t.Name, err)
			}
		}
	}
	return nil
}
