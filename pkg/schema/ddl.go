package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	t := modelType(model)

	var columns []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns column names of a model in field order.
func Columns(model any) []string {
	t := modelType(model)
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

func modelType(model any) reflect.Type {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// ConservationUnit DDL methods
func (c ConservationUnit) TableDDL() string {
	return generateDDL(c, c.TableName())
}

func (c ConservationUnit) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_cus_species ON cus(species);",
	}
}

func (c ConservationUnit) TableName() string {
	return "cus"
}

// Population DDL methods
func (p Population) TableDDL() string {
	return generateDDL(p, p.TableName())
}

func (p Population) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_populations_data_set ON populations(data_set);",
	}
}

func (p Population) TableName() string {
	return "populations"
}

// MetricValue DDL methods
func (m MetricValue) TableDDL() string {
	return generateDDL(m, m.TableName())
}

func (m MetricValue) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_metric_values_key ON metric_values(data_type, year, metric);",
	}
}

func (m MetricValue) TableName() string {
	return "metric_values"
}

// CUSeriesValue DDL methods
func (v CUSeriesValue) TableDDL() string {
	return generateDDL(v, v.TableName())
}

func (v CUSeriesValue) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_cu_series_values_year ON cu_series_values(year);",
	}
}

func (v CUSeriesValue) TableName() string {
	return "cu_series_values"
}

// PopSeriesValue DDL methods
func (v PopSeriesValue) TableDDL() string {
	return generateDDL(v, v.TableName())
}

func (v PopSeriesValue) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_pop_series_values_ts ON pop_series_values(ts_name, year);",
	}
}

func (v PopSeriesValue) TableName() string {
	return "pop_series_values"
}

// CUBoundary DDL methods
func (b CUBoundary) TableDDL() string {
	return generateDDL(b, b.TableName())
}

func (b CUBoundary) IndexDDL() []string {
	return []string{}
}

func (b CUBoundary) TableName() string {
	return "cu_boundaries"
}

// PopSite DDL methods
func (s PopSite) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s PopSite) IndexDDL() []string {
	return []string{}
}

func (s PopSite) TableName() string {
	return "pop_sites"
}

// StreamSegment DDL methods
func (s StreamSegment) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s StreamSegment) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_stream_segments_order ON stream_segments(stream_order);",
	}
}

func (s StreamSegment) TableName() string {
	return "stream_segments"
}

// BuildInfo DDL methods
func (b BuildInfo) TableDDL() string {
	return generateDDL(b, b.TableName())
}

func (b BuildInfo) IndexDDL() []string {
	return []string{}
}

func (b BuildInfo) TableName() string {
	return "build_infos"
}
