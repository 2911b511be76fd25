// Package report collects recoverable data-quality problems found while
// building a snapshot. Nothing in a report stops the build.
package report

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/cudb/pkg/popmatch"
	"github.com/gnames/cudb/pkg/reshape"
	"github.com/gnames/cudb/pkg/translate"
)

// Count is the number of rows of an output table.
type Count struct {
	Table string
	Rows  int
}

// Report describes one build.
type Report struct {
	// Collisions are ambiguous legacy identifiers.
	Collisions []translate.Collision
	// Dropped counts rows per dataset removed because their CU_ID or
	// Pop_UID could not be resolved.
	Dropped map[string]int
	// DuplicateCUs are CU_IDs that occur more than once in the lookup,
	// the first record is kept.
	DuplicateCUs []string
	// DuplicatePops are Pop_UIDs that occur more than once in the lookup,
	// the first record is kept.
	DuplicatePops []string
	// OrphanPops are Pop_UIDs whose CU is not in the CU lookup.
	OrphanPops []string
	// UnmatchedSeries is the number of population time-series records
	// that did not match any population.
	UnmatchedSeries int
	// MatchedBy counts matched population time-series records per
	// matching strategy.
	MatchedBy map[string]int
	// DuplicateYears are years repeated within a population time series.
	DuplicateYears []popmatch.DuplicateYear
	// MetricCollisions are overwritten metric observations.
	MetricCollisions []reshape.Collision
	// MetricsSkipped counts metric observations without a complete key.
	MetricsSkipped int
	// Drift lists attribute values outside of declared orderings.
	Drift map[string][]string
	// SiteDuplicates counts population sites dropped because another site
	// was chosen for the same Pop_UID.
	SiteDuplicates int
	// StreamsDropped counts stream segments without selectable CUs.
	StreamsDropped int
	// Counts are sizes of the output tables.
	Counts []Count
}

// New creates an empty report.
func New() *Report {
	return &Report{
		Dropped:   make(map[string]int),
		MatchedBy: make(map[string]int),
		Drift:     make(map[string][]string),
	}
}

// AddCount records the size of an output table.
func (r *Report) AddCount(tbl string, rows int) {
	r.Counts = append(r.Counts, Count{Table: tbl, Rows: rows})
}

// AddDropped adds to the number of dropped rows of a dataset.
func (r *Report) AddDropped(dataset string, n int) {
	if n == 0 {
		return
	}
	r.Dropped[dataset] += n
}

// HasIssues returns true if any data-quality problem was found.
func (r *Report) HasIssues() bool {
	return len(r.Collisions) > 0 ||
		len(r.Dropped) > 0 ||
		len(r.DuplicateCUs) > 0 ||
		len(r.DuplicatePops) > 0 ||
		len(r.OrphanPops) > 0 ||
		r.UnmatchedSeries > 0 ||
		len(r.DuplicateYears) > 0 ||
		len(r.MetricCollisions) > 0 ||
		r.MetricsSkipped > 0 ||
		len(r.Drift) > 0 ||
		r.SiteDuplicates > 0 ||
		r.StreamsDropped > 0
}

// Issues returns one line per data-quality problem.
func (r *Report) Issues() []string {
	var res []string
	for _, c := range r.Collisions {
		res = append(res, "identifier collision, "+c.String())
	}
	for _, ds := range sortedKeys(r.Dropped) {
		res = append(res, fmt.Sprintf(
			"%s: %d rows dropped, identifiers did not resolve",
			ds, r.Dropped[ds],
		))
	}
	if len(r.DuplicateCUs) > 0 {
		res = append(res, "duplicate CU_ID in lookup, first record kept: "+
			strings.Join(r.DuplicateCUs, ", "))
	}
	if len(r.DuplicatePops) > 0 {
		res = append(res, "duplicate Pop_UID in lookup, first record kept: "+
			strings.Join(r.DuplicatePops, ", "))
	}
	if len(r.OrphanPops) > 0 {
		res = append(res, "populations of unknown CUs dropped: "+
			strings.Join(r.OrphanPops, ", "))
	}
	if r.UnmatchedSeries > 0 {
		res = append(res, fmt.Sprintf(
			"%d population time-series records did not match a population",
			r.UnmatchedSeries,
		))
	}
	for _, d := range r.DuplicateYears {
		res = append(res, fmt.Sprintf(
			"duplicate year %d in time series '%s' of %s (rows %v)",
			d.Year, d.TSName, d.Key.String(), d.Rows,
		))
	}
	for _, c := range r.MetricCollisions {
		res = append(res, fmt.Sprintf(
			"metric %s of %s observed more than once (rows %v), last one kept",
			c.Metric, c.Key, c.Rows,
		))
	}
	if r.MetricsSkipped > 0 {
		res = append(res, fmt.Sprintf(
			"%d metric observations without complete key skipped",
			r.MetricsSkipped,
		))
	}
	for _, col := range sortedKeys(r.Drift) {
		res = append(res, fmt.Sprintf(
			"attribute %s has values outside of its ordering: %s",
			col, strings.Join(r.Drift[col], ", "),
		))
	}
	if r.SiteDuplicates > 0 {
		res = append(res, fmt.Sprintf(
			"%d duplicate population sites dropped", r.SiteDuplicates,
		))
	}
	if r.StreamsDropped > 0 {
		res = append(res, fmt.Sprintf(
			"%d stream segments without CUs dropped", r.StreamsDropped,
		))
	}
	return res
}

// Log writes counts at INFO level and every issue at WARN level to the
// default logger.
func (r *Report) Log() {
	for _, c := range r.Counts {
		slog.Info("Table built", "table", c.Table, "rows", c.Rows)
	}
	for k, v := range r.MatchedBy {
		slog.Info("Population series matched", "strategy", k, "records", v)
	}
	for _, c := range r.Collisions {
		slog.Warn("Identifier collision",
			"dataset", c.Dataset,
			"column", c.OldColumn,
			"value", c.Old,
			"candidates", c.New,
			"rows", c.Rows,
		)
	}
	for ds, n := range r.Dropped {
		slog.Warn("Rows dropped", "dataset", ds, "rows", n)
	}
	for _, d := range r.DuplicateYears {
		slog.Warn("Duplicate year in time series",
			"pop_uid", d.Key.String(),
			"ts_name", d.TSName,
			"year", d.Year,
			"rows", d.Rows,
		)
	}
	for _, c := range r.MetricCollisions {
		slog.Warn("Metric observation overwritten",
			"key", c.Key, "metric", c.Metric, "rows", c.Rows)
	}
	for col, vals := range r.Drift {
		slog.Warn("Attribute values outside of ordering",
			"column", col, "values", vals)
	}
	if len(r.DuplicateCUs) > 0 {
		slog.Warn("Duplicate CU_ID in lookup", "cu_ids", r.DuplicateCUs)
	}
	if len(r.DuplicatePops) > 0 {
		slog.Warn("Duplicate Pop_UID in lookup", "pop_uids", r.DuplicatePops)
	}
	if len(r.OrphanPops) > 0 {
		slog.Warn("Populations of unknown CUs", "pop_uids", r.OrphanPops)
	}
	if r.UnmatchedSeries > 0 {
		slog.Warn("Unmatched population series records",
			"records", r.UnmatchedSeries)
	}
	if r.MetricsSkipped > 0 {
		slog.Warn("Incomplete metric observations", "records", r.MetricsSkipped)
	}
	if r.SiteDuplicates > 0 {
		slog.Warn("Duplicate population sites", "rows", r.SiteDuplicates)
	}
	if r.StreamsDropped > 0 {
		slog.Warn("Stream segments without CUs", "segments", r.StreamsDropped)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}
