package ioexport

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

// analyze updates query planner statistics of freshly loaded tables.
// VACUUM is not needed, tables are truncated before the load.
func (e *exporter) analyze(ctx context.Context, tables []string) error {
	slog.Info("Running ANALYZE on exported tables")
	timeStart := time.Now()

	for _, v := range tables {
		tbl := pgx.Identifier{v}.Sanitize()
		if _, err := e.operator.Pool().Exec(ctx, "ANALYZE "+tbl); err != nil {
			return ExportError(v, err)
		}
	}

	slog.Info("ANALYZE completed", "duration", time.Since(timeStart).String())
	return nil
}
