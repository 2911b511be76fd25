// Package ioexport implements the Exporter interface. It copies a
// snapshot into PostgreSQL tables created by ioschema.
package ioexport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	app "github.com/gnames/cudb/pkg"
	"github.com/gnames/cudb/pkg/config"
	"github.com/gnames/cudb/pkg/cudb"
	"github.com/gnames/cudb/pkg/db"
	"github.com/gnames/cudb/pkg/report"
	"github.com/gnames/cudb/pkg/schema"
	"github.com/gnames/cudb/pkg/snapshot"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/jackc/pgx/v5"
)

type exporter struct {
	cfg      *config.Config
	operator db.Operator
	report   *report.Report
}

// New creates an Exporter. The report is saved with build metadata, it
// can be nil.
func New(
	cfg *config.Config,
	op db.Operator,
	rep *report.Report,
) cudb.Exporter {
	return &exporter{cfg: cfg, operator: op, report: rep}
}

// Export replaces data of all export tables with the snapshot in one
// transaction. On failure the previous export stays intact.
func (e *exporter) Export(ctx context.Context, s *snapshot.Snapshot) error {
	pool := e.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	startTime := time.Now()
	for _, tbl := range schema.TableNames() {
		exists, err := e.operator.TableExists(ctx, tbl)
		if err != nil {
			return err
		}
		if !exists {
			return NoSchemaError(tbl)
		}
	}

	tables, err := e.tables(s)
	if err != nil {
		return ExportError(schema.BuildInfo{}.TableName(), err)
	}

	// Old rows stay visible until the whole snapshot is loaded.
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return TransactionError(err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	err = e.operator.TruncateTables(ctx, tx, schema.TableNames()...)
	if err != nil {
		return err
	}

	var total int
	for _, t := range tables {
		select {
		case <-ctx.Done():
			return ExportError(t.name, ctx.Err())
		default:
		}
		if err := copyRows(ctx, tx, t, e.cfg.Database.BatchSize); err != nil {
			return ExportError(t.name, err)
		}
		total += len(t.rows)
	}

	if err = tx.Commit(ctx); err != nil {
		return TransactionError(err)
	}

	if err := e.analyze(ctx, schema.TableNames()); err != nil {
		return err
	}

	dur := time.Since(startTime)
	slog.Info("Export complete",
		"snapshot", s.ID(),
		"rows", total,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info("Exported <em>%s</em> rows in %s",
		humanize.Comma(int64(total)), gnfmt.TimeString(dur.Seconds()))
	return nil
}

func (e *exporter) tables(s *snapshot.Snapshot) ([]tableRows, error) {
	info, err := e.buildInfo(s)
	if err != nil {
		return nil, err
	}
	res := []tableRows{
		rows(schema.ConservationUnit{}, cuRows(s)),
		rows(schema.Population{}, popRows(s)),
		rows(schema.MetricValue{}, metricRows(s)),
		rows(schema.CUSeriesValue{}, cuSeriesRows(s)),
		rows(schema.PopSeriesValue{}, popSeriesRows(s)),
		rows(schema.CUBoundary{}, boundaryRows(s)),
		rows(schema.PopSite{}, siteRows(s)),
		rows(schema.StreamSegment{}, streamRows(s)),
		rows(schema.BuildInfo{}, [][]any{info}),
	}
	return res, nil
}

func (e *exporter) buildInfo(s *snapshot.Snapshot) ([]any, error) {
	var rep string
	if e.report != nil {
		bs, err := gnfmt.GNjson{}.Encode(e.report)
		if err != nil {
			return nil, fmt.Errorf("cannot encode report: %w", err)
		}
		rep = string(bs)
	}
	return []any{s.ID(), app.Version, s.Created(), time.Now(), rep}, nil
}

func rows(model schema.DDLGenerator, data [][]any) tableRows {
	return tableRows{
		name:    model.TableName(),
		columns: schema.Columns(model),
		rows:    data,
	}
}

// copyRows inserts rows with CopyFrom in batches of the given size.
func copyRows(ctx context.Context, tx pgx.Tx, t tableRows, size int) error {
	if len(t.rows) == 0 {
		return nil
	}

	bar := pb.Full.Start(len(t.rows))
	bar.Set("prefix", fmt.Sprintf("Exporting %s: ", t.name))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	batch := max(size, 1)
	for start := 0; start < len(t.rows); start += batch {
		end := min(start+batch, len(t.rows))
		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{t.name},
			t.columns,
			pgx.CopyFromRows(t.rows[start:end]),
		)
		if err != nil {
			return err
		}
		bar.Add(end - start)
	}

	slog.Info("Exported table",
		"table", t.name,
		"rows", humanize.Comma(int64(len(t.rows))),
	)
	return nil
}
