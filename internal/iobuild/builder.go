// Package iobuild implements the Builder interface. It reads input
// datasets listed in sources.yaml, reconciles them into a snapshot and
// saves the snapshot to a SQLite file.
package iobuild

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cudb/internal/ioinput"
	"github.com/gnames/cudb/internal/iosnapshot"
	"github.com/gnames/cudb/internal/iosources"
	app "github.com/gnames/cudb/pkg"
	"github.com/gnames/cudb/pkg/config"
	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/cudb"
	"github.com/gnames/cudb/pkg/report"
	"github.com/gnames/cudb/pkg/snapshot"
	"github.com/gnames/cudb/pkg/sources"
	"github.com/gnames/cudb/pkg/table"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

type builder struct {
	cfg *config.Config
}

// New creates a new Builder.
func New(cfg *config.Config) cudb.Builder {
	return &builder{cfg: cfg}
}

// Build reads datasets, runs reconciliation and saves the snapshot
// unless Build.WithoutSnapshot is set.
func (b *builder) Build(
	ctx context.Context,
) (*snapshot.Snapshot, *report.Report, error) {
	startTime := time.Now()
	slog.Info("Starting build")

	src, err := iosources.New(b.cfg).Load()
	if err != nil {
		return nil, nil, err
	}

	steps := 3
	if b.cfg.Build.WithoutSnapshot {
		steps = 2
	}

	names := src.DatasetNames()
	gn.Info("(1/%d) Reading <em>%d</em> datasets", steps, len(names))
	tables, err := b.read(ctx, src, names)
	if err != nil {
		return nil, nil, err
	}

	gn.Info("(2/%d) Reconciling CUs and populations", steps)
	s, rep, err := snapshot.Build(inputs(src, tables))
	if err != nil {
		return nil, nil, BuildError(err)
	}
	rep.Log()
	for _, v := range rep.Issues() {
		gn.Warn("<warn>%s</warn>", v)
	}

	if !b.cfg.Build.WithoutSnapshot {
		path := b.cfg.SnapshotFile()
		gn.Info("(3/%d) Saving snapshot to <em>%s</em>", steps, path)
		info := iosnapshot.Info{
			ID:      s.ID(),
			Created: s.Created(),
			Version: app.Version,
			Report:  rep,
		}
		if err = iosnapshot.Write(ctx, path, s, info); err != nil {
			return nil, nil, err
		}
	}

	dur := time.Since(startTime)
	slog.Info("Build complete",
		"snapshot", s.ID(),
		"cus", len(s.CUs()),
		"populations", len(s.Populations()),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info("Built <em>%s</em> CUs and <em>%s</em> populations in %s",
		humanize.Comma(int64(len(s.CUs()))),
		humanize.Comma(int64(len(s.Populations()))),
		gnfmt.TimeString(dur.Seconds()),
	)
	return s, rep, nil
}

// read loads datasets concurrently, at most JobsNumber files at a time.
func (b *builder) read(
	ctx context.Context,
	src *sources.SourcesConfig,
	names []string,
) (map[string]*table.Table, error) {
	res := make([]*table.Table, len(names))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.cfg.JobsNumber, 1))
	for i, name := range names {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			t, err := ioinput.Read(name, src.Datasets[name])
			if err != nil {
				return err
			}
			slog.Info("Dataset loaded",
				"dataset", name,
				"file", src.Datasets[name].File,
				"rows", t.Len(),
			)
			res[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tables := make(map[string]*table.Table, len(names))
	for i, name := range names {
		tables[name] = res[i]
	}
	return tables, nil
}

func inputs(
	src *sources.SourcesConfig,
	tables map[string]*table.Table,
) snapshot.Inputs {
	return snapshot.Inputs{
		CULookup:        tables[cu.DatasetCULookup],
		PopLookup:       tables[cu.DatasetPopLookup],
		Metrics:         tables[cu.DatasetMetrics],
		CUSeries:        tables[cu.DatasetCUSeries],
		PopSeries:       tables[cu.DatasetPopSeries],
		Boundaries:      tables[cu.DatasetBoundaries],
		Sites:           tables[cu.DatasetSites],
		Streams:         tables[cu.DatasetStreams],
		Keys:            src.Keys(),
		CanonicalColumn: src.CanonicalColumn,
		Attributes:      src.Attributes,
		Orderings:       src.Orderings,
	}
}
