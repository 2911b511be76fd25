package ioexport

import (
	"math"
	"slices"
	"strings"

	"github.com/gnames/cudb/pkg/category"
	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/snapshot"
	"github.com/gnames/cudb/pkg/table"
	"github.com/gnames/gnuuid"
)

// tableRows are rows of one export table ready for CopyFrom.
type tableRows struct {
	name    string
	columns []string
	rows    [][]any
}

// seriesKeys are columns of population time series that are not values.
var seriesKeys = []string{
	cu.ColCUID, cu.ColPopID, cu.ColPopName, cu.ColPopUID, cu.ColDataSet,
	cu.ColTSName, cu.ColYear,
}

func cuRows(s *snapshot.Snapshot) [][]any {
	cus := s.CUs()
	res := make([][]any, 0, len(cus))
	for _, c := range cus {
		start, end := years(c.Years)
		res = append(res, []any{
			gnuuid.New(c.ID).String(),
			c.ID, c.Name, c.Species, c.Zone, c.Area,
			c.RunTiming, c.LifeHistory, c.AvGen,
			c.HasMetricsData, c.HasTimeSeriesData,
			start, end,
		})
	}
	return res
}

func popRows(s *snapshot.Snapshot) [][]any {
	pops := s.Populations()
	res := make([][]any, 0, len(pops))
	for _, p := range pops {
		start, end := years(p.Years)
		res = append(res, []any{
			gnuuid.New(p.UID).String(),
			p.UID, p.Key.CUID, p.Key.PopID, p.Name, p.Species,
			p.DataSet, p.WSKey,
			float(p.Lat), float(p.Long),
			strings.Join(p.TSNames, cu.TSNamesSep),
			p.HasTimeSeriesData, start, end,
		})
	}
	return res
}

// metricRows returns metrics in long form. Metrics without value and
// without status are skipped.
func metricRows(s *snapshot.Snapshot) [][]any {
	w := s.Metrics().Wide
	var res [][]any
	for _, r := range w.Rows {
		for i, m := range w.Metrics {
			v, st := r.Values[i], r.Status[i]
			if math.IsNaN(v) && st == category.NA {
				continue
			}
			res = append(res, []any{
				r.CUID, r.DataType, r.Year, m, float(v),
				cu.StatusScale.Label(st),
			})
		}
	}
	return res
}

// cuSeriesRows melts the CU time series: every non-empty value cell
// becomes a row.
func cuSeriesRows(s *snapshot.Snapshot) [][]any {
	t := s.CUSeries()
	if t == nil {
		return nil
	}
	vars := valueColumns(t, cu.ColCUID, cu.ColYear)
	var res [][]any
	for i := range t.Len() {
		year, ok := cu.ParseYear(t.Get(i, cu.ColYear))
		if !ok {
			continue
		}
		for _, v := range vars {
			val := t.Get(i, v)
			if table.IsNA(val) {
				continue
			}
			res = append(res, []any{t.Get(i, cu.ColCUID), year, v, val})
		}
	}
	return res
}

func popSeriesRows(s *snapshot.Snapshot) [][]any {
	t := s.PopSeries()
	if t == nil {
		return nil
	}
	vars := valueColumns(t, seriesKeys...)
	var res [][]any
	for i := range t.Len() {
		year, ok := cu.ParseYear(t.Get(i, cu.ColYear))
		if !ok {
			continue
		}
		for _, v := range vars {
			val := t.Get(i, v)
			if table.IsNA(val) {
				continue
			}
			res = append(res, []any{
				t.Get(i, cu.ColPopUID), t.Get(i, cu.ColTSName), year, v, val,
			})
		}
	}
	return res
}

func boundaryRows(s *snapshot.Snapshot) [][]any {
	t := s.Boundaries()
	if t == nil {
		return nil
	}
	res := make([][]any, 0, t.Len())
	for i := range t.Len() {
		res = append(res, []any{t.Get(i, cu.ColCUID), t.Get(i, cu.ColGeometry)})
	}
	return res
}

func siteRows(s *snapshot.Snapshot) [][]any {
	t := s.Sites()
	if t == nil {
		return nil
	}
	res := make([][]any, 0, t.Len())
	for i := range t.Len() {
		res = append(res, []any{
			t.Get(i, cu.ColPopUID),
			t.Get(i, cu.ColSiteName),
			float(cu.ParseFloat(t.Get(i, cu.ColLat))),
			float(cu.ParseFloat(t.Get(i, cu.ColLong))),
		})
	}
	return res
}

func streamRows(s *snapshot.Snapshot) [][]any {
	segs := s.Streams()
	res := make([][]any, 0, len(segs))
	for _, v := range segs {
		res = append(res, []any{
			v.Code, v.Stripped, v.Order, v.Name,
			v.CUList(), v.PopList(), v.Geometry,
		})
	}
	return res
}

func valueColumns(t *table.Table, keys ...string) []string {
	var res []string
	for _, c := range t.Columns() {
		if !slices.Contains(keys, c) {
			res = append(res, c)
		}
	}
	return res
}

// float converts NaN to NULL.
func float(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

func years(r cu.YearRange) (any, any) {
	if !r.Valid {
		return nil, nil
	}
	return r.Start, r.End
}
