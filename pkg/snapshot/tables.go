package snapshot

import (
	"strconv"
	"strings"

	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/reshape"
	"github.com/gnames/cudb/pkg/streams"
	"github.com/gnames/cudb/pkg/table"
)

// Names of output tables.
const (
	TableCUs         = "cus"
	TablePopulations = "populations"
	TableMetrics     = "metrics"
	TableCUSeries    = "cu_timeseries"
	TablePopSeries   = "pop_timeseries"
	TableBoundaries  = "cu_boundaries"
	TableSites       = "pop_sites"
	TableStreams     = "streams"
)

// Tables flattens the snapshot into string tables named by the Table
// constants. Missing optional datasets produce empty tables.
func (s *Snapshot) Tables() []*table.Table {
	return []*table.Table{
		s.CUTable(),
		s.PopTable(),
		s.metrics.Table(TableMetrics),
		named(s.cuSeries, TableCUSeries),
		named(s.popSeries, TablePopSeries),
		named(s.boundaries, TableBoundaries),
		named(s.sites, TableSites),
		s.streamTable(),
	}
}

// CUTable flattens CUs with their availability fields.
func (s *Snapshot) CUTable() *table.Table {
	res := table.New(TableCUs,
		cu.ColCUID, cu.ColCUName, cu.ColSpecies, cu.ColZone, cu.ColArea,
		cu.ColRunTiming, cu.ColLifeHistory, cu.ColAvGen,
		cu.ColHasMetricsData, cu.ColHasTimeSeriesData,
		cu.ColDataStartYear, cu.ColDataEndYear,
	)
	for _, c := range s.cus {
		start, end := years(c.Years)
		res.Append(
			c.ID, c.Name, c.Species, c.Zone, c.Area,
			c.RunTiming, c.LifeHistory, c.AvGen,
			cu.YesNo(c.HasMetricsData), cu.YesNo(c.HasTimeSeriesData),
			start, end,
		)
	}
	return res
}

// PopTable flattens populations with their availability fields.
func (s *Snapshot) PopTable() *table.Table {
	res := table.New(TablePopulations,
		cu.ColPopUID, cu.ColCUID, cu.ColPopID, cu.ColPopName, cu.ColSpecies,
		cu.ColDataSet, cu.ColWSKey, cu.ColLat, cu.ColLong, cu.ColTSNames,
		cu.ColHasTimeSeriesData, cu.ColDataStartYear, cu.ColDataEndYear,
	)
	for _, p := range s.pops {
		start, end := years(p.Years)
		res.Append(
			p.UID, p.Key.CUID, p.Key.PopID, p.Name, p.Species,
			p.DataSet, p.WSKey,
			reshape.FormatFloat(p.Lat), reshape.FormatFloat(p.Long),
			strings.Join(p.TSNames, cu.TSNamesSep),
			cu.YesNo(p.HasTimeSeriesData), start, end,
		)
	}
	return res
}

func (s *Snapshot) streamTable() *table.Table {
	r := streams.Result{Segments: s.streams}
	return r.Table(TableStreams)
}

func years(r cu.YearRange) (string, string) {
	if !r.Valid {
		return table.NA, table.NA
	}
	return strconv.Itoa(r.Start), strconv.Itoa(r.End)
}

func named(t *table.Table, name string) *table.Table {
	if t == nil {
		return table.New(name)
	}
	res := t.Clone()
	res.Name = name
	return res
}
