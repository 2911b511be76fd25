// Package iosnapshot saves a built snapshot into a SQLite file. Every
// snapshot table becomes a SQLite table with TEXT columns, and build
// metadata goes to the build_info table.
package iosnapshot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/cudb/pkg/report"
	"github.com/gnames/cudb/pkg/snapshot"
	"github.com/gnames/cudb/pkg/table"
	"github.com/gnames/gnfmt"
	_ "modernc.org/sqlite"
)

// InfoTable keeps build metadata as key/value pairs.
const InfoTable = "build_info"

// Info is metadata of a snapshot build.
type Info struct {
	ID      string
	Created time.Time
	Version string
	Report  *report.Report
}

// Write saves the snapshot to path. The file is written next to its final
// location first and renamed when complete, so an existing snapshot is
// replaced only by a complete one.
func Write(
	ctx context.Context,
	path string,
	s *snapshot.Snapshot,
	info Info,
) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return WriteError(path, err)
	}
	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	if err := write(ctx, tmp, s.Tables(), info); err != nil {
		_ = os.Remove(tmp)
		return WriteError(path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return WriteError(path, err)
	}
	slog.Info("Snapshot saved", "path", path, "id", info.ID)
	return nil
}

func write(
	ctx context.Context,
	path string,
	tbls []*table.Table,
	info Info,
) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, t := range tbls {
		if err = writeTable(ctx, tx, t); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}
	if err = writeInfo(ctx, tx, info); err != nil {
		return fmt.Errorf("table %s: %w", InfoTable, err)
	}
	return tx.Commit()
}

func writeTable(ctx context.Context, tx *sql.Tx, t *table.Table) error {
	cols := t.Columns()
	if len(cols) == 0 {
		cols = []string{"empty"}
	}
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c) + " TEXT"
		marks[i] = "?"
	}

	q := fmt.Sprintf("CREATE TABLE %s (%s)", quote(t.Name),
		strings.Join(quoted, ", "))
	if _, err := tx.ExecContext(ctx, q); err != nil {
		return err
	}
	if t.Len() == 0 {
		return nil
	}

	q = fmt.Sprintf("INSERT INTO %s VALUES (%s)", quote(t.Name),
		strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for i := range t.Len() {
		for j, v := range t.Row(i) {
			// NA is stored as NULL
			if table.IsNA(v) {
				args[j] = nil
				continue
			}
			args[j] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func writeInfo(ctx context.Context, tx *sql.Tx, info Info) error {
	q := fmt.Sprintf("CREATE TABLE %s (key TEXT PRIMARY KEY, value TEXT)",
		InfoTable)
	if _, err := tx.ExecContext(ctx, q); err != nil {
		return err
	}

	var rep []byte
	if info.Report != nil {
		var err error
		enc := gnfmt.GNjson{}
		if rep, err = enc.Encode(info.Report); err != nil {
			return err
		}
	}

	vals := [][2]string{
		{"id", info.ID},
		{"created", info.Created.UTC().Format(time.RFC3339)},
		{"version", info.Version},
		{"report", string(rep)},
	}
	q = fmt.Sprintf("INSERT INTO %s (key, value) VALUES (?, ?)", InfoTable)
	for _, v := range vals {
		if _, err := tx.ExecContext(ctx, q, v[0], v[1]); err != nil {
			return err
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
