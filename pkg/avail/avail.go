// Package avail annotates CUs and populations with data availability and
// the years covered by their time series.
package avail

import (
	"strings"

	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/reshape"
	"github.com/gnames/cudb/pkg/table"
)

// Years returns the covered year range per value of keyCol. Rows with
// NA key or unparsable year are ignored.
func Years(series *table.Table, keyCol string) map[string]cu.YearRange {
	res := make(map[string]cu.YearRange)
	if series == nil {
		return res
	}
	for i := range series.Len() {
		key := strings.TrimSpace(series.Get(i, keyCol))
		if key == "" {
			continue
		}
		year, ok := cu.ParseYear(series.Get(i, cu.ColYear))
		if !ok {
			continue
		}
		res[key] = res[key].Extend(year)
	}
	return res
}

// CUs returns copies of CUs with availability fields computed from the
// wide metrics and the CU time series (CU_ID, Year). Time series rows
// with a missing year still count as data.
func CUs(cus []cu.CU, metrics *reshape.Wide, series *table.Table) []cu.CU {
	withMetrics := make(map[string]struct{})
	if metrics != nil {
		for _, r := range metrics.Rows {
			withMetrics[r.CUID] = struct{}{}
		}
	}
	withSeries := keys(series, cu.ColCUID)
	years := Years(series, cu.ColCUID)

	res := make([]cu.CU, len(cus))
	for i, c := range cus {
		_, c.HasMetricsData = withMetrics[c.ID]
		_, c.HasTimeSeriesData = withSeries[c.ID]
		c.Years = years[c.ID]
		res[i] = c
	}
	return res
}

// Populations returns copies of populations with availability fields
// computed from the matched population time series (Pop_UID, Year).
func Populations(pops []cu.Population, series *table.Table) []cu.Population {
	withSeries := keys(series, cu.ColPopUID)
	years := Years(series, cu.ColPopUID)

	res := make([]cu.Population, len(pops))
	for i, p := range pops {
		_, p.HasTimeSeriesData = withSeries[p.UID]
		p.Years = years[p.UID]
		res[i] = p
	}
	return res
}

func keys(t *table.Table, col string) map[string]struct{} {
	res := make(map[string]struct{})
	if t == nil {
		return res
	}
	for k := range t.Index(col) {
		res[k] = struct{}{}
	}
	return res
}
