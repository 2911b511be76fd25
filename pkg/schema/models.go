// Package schema provides PostgreSQL export models for cudb.
// Column names come from `db` tags, PostgreSQL types from `ddl` tags.
// GORM AutoMigrate uses the same column names via `gorm` tags.
package schema

import (
	"database/sql"
	"time"
)

// DDLGenerator defines how Go models generate PostgreSQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the PostgreSQL table name for this model.
	TableName() string
}

// ConservationUnit is a reconciled CU with data availability.
type ConservationUnit struct {
	// ID is UUID v5 generated from CU_ID.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"column:id;type:uuid;primaryKey"`

	// CUID is the canonical CU identifier.
	CUID string `db:"cu_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:cu_id;type:varchar(50);not null;uniqueIndex"`

	Name        string `db:"name" ddl:"VARCHAR(255)" gorm:"column:name;type:varchar(255)"`
	Species     string `db:"species" ddl:"VARCHAR(100)" gorm:"column:species;type:varchar(100)"`
	Zone        string `db:"zone" ddl:"VARCHAR(100)" gorm:"column:zone;type:varchar(100)"`
	Area        string `db:"area" ddl:"VARCHAR(100)" gorm:"column:area;type:varchar(100)"`
	RunTiming   string `db:"run_timing" ddl:"VARCHAR(100)" gorm:"column:run_timing;type:varchar(100)"`
	LifeHistory string `db:"life_history" ddl:"VARCHAR(100)" gorm:"column:life_history;type:varchar(100)"`
	AvGen       string `db:"av_gen" ddl:"VARCHAR(50)" gorm:"column:av_gen;type:varchar(50)"`

	HasMetricsData    bool `db:"has_metrics_data" ddl:"BOOLEAN" gorm:"column:has_metrics_data"`
	HasTimeSeriesData bool `db:"has_time_series_data" ddl:"BOOLEAN" gorm:"column:has_time_series_data"`

	// DataStartYear is NULL when the CU has no time series.
	DataStartYear sql.NullInt32 `db:"data_start_year" ddl:"INT" gorm:"column:data_start_year"`
	DataEndYear   sql.NullInt32 `db:"data_end_year" ddl:"INT" gorm:"column:data_end_year"`
}

// Population is a reconciled population.
type Population struct {
	// ID is UUID v5 generated from Pop_UID.
	ID string `db:"id" ddl:"UUID PRIMARY KEY" gorm:"column:id;type:uuid;primaryKey"`

	// PopUID is CU_ID and Pop_ID joined with a dot.
	PopUID string `db:"pop_uid" ddl:"VARCHAR(100) NOT NULL" gorm:"column:pop_uid;type:varchar(100);not null;uniqueIndex"`

	CUID    string `db:"cu_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:cu_id;type:varchar(50);not null;index"`
	PopID   string `db:"pop_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:pop_id;type:varchar(50);not null"`
	Name    string `db:"name" ddl:"VARCHAR(255)" gorm:"column:name;type:varchar(255)"`
	Species string `db:"species" ddl:"VARCHAR(100)" gorm:"column:species;type:varchar(100)"`
	DataSet string `db:"data_set" ddl:"VARCHAR(100)" gorm:"column:data_set;type:varchar(100)"`
	WSKey   string `db:"ws_key" ddl:"VARCHAR(100)" gorm:"column:ws_key;type:varchar(100)"`

	Lat  sql.NullFloat64 `db:"lat" ddl:"DOUBLE PRECISION" gorm:"column:lat"`
	Long sql.NullFloat64 `db:"long" ddl:"DOUBLE PRECISION" gorm:"column:long"`

	// TSNames are names of matched time series, colon-separated.
	TSNames string `db:"ts_names" ddl:"TEXT" gorm:"column:ts_names;type:text"`

	HasTimeSeriesData bool          `db:"has_time_series_data" ddl:"BOOLEAN" gorm:"column:has_time_series_data"`
	DataStartYear     sql.NullInt32 `db:"data_start_year" ddl:"INT" gorm:"column:data_start_year"`
	DataEndYear       sql.NullInt32 `db:"data_end_year" ddl:"INT" gorm:"column:data_end_year"`
}

// MetricValue is one metric of a wide metric row, stored in long form.
type MetricValue struct {
	CUID     string          `db:"cu_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:cu_id;type:varchar(50);not null;index"`
	DataType string          `db:"data_type" ddl:"VARCHAR(50) NOT NULL" gorm:"column:data_type;type:varchar(50);not null"`
	Year     int             `db:"year" ddl:"INT NOT NULL" gorm:"column:year;not null"`
	Metric   string          `db:"metric" ddl:"VARCHAR(100) NOT NULL" gorm:"column:metric;type:varchar(100);not null"`
	Value    sql.NullFloat64 `db:"value" ddl:"DOUBLE PRECISION" gorm:"column:value"`

	// Status is Red, Amber or Green, empty when unknown.
	Status string `db:"status" ddl:"VARCHAR(10)" gorm:"column:status;type:varchar(10)"`
}

// CUSeriesValue is one value of a CU time series.
type CUSeriesValue struct {
	CUID     string `db:"cu_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:cu_id;type:varchar(50);not null;index"`
	Year     int    `db:"year" ddl:"INT NOT NULL" gorm:"column:year;not null"`
	Variable string `db:"variable" ddl:"VARCHAR(100) NOT NULL" gorm:"column:variable;type:varchar(100);not null"`
	Value    string `db:"value" ddl:"TEXT" gorm:"column:value;type:text"`
}

// PopSeriesValue is one value of a matched population time series.
type PopSeriesValue struct {
	PopUID   string `db:"pop_uid" ddl:"VARCHAR(100) NOT NULL" gorm:"column:pop_uid;type:varchar(100);not null;index"`
	TSName   string `db:"ts_name" ddl:"VARCHAR(100) NOT NULL" gorm:"column:ts_name;type:varchar(100);not null"`
	Year     int    `db:"year" ddl:"INT NOT NULL" gorm:"column:year;not null"`
	Variable string `db:"variable" ddl:"VARCHAR(100) NOT NULL" gorm:"column:variable;type:varchar(100);not null"`
	Value    string `db:"value" ddl:"TEXT" gorm:"column:value;type:text"`
}

// CUBoundary is a boundary of a CU as a WKT string.
type CUBoundary struct {
	CUID     string `db:"cu_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:cu_id;type:varchar(50);not null;index"`
	Geometry string `db:"geometry" ddl:"TEXT" gorm:"column:geometry;type:text"`
}

// PopSite is a location of a population.
type PopSite struct {
	PopUID   string          `db:"pop_uid" ddl:"VARCHAR(100) NOT NULL" gorm:"column:pop_uid;type:varchar(100);not null;index"`
	SiteName string          `db:"site_name" ddl:"VARCHAR(255)" gorm:"column:site_name;type:varchar(255)"`
	Lat      sql.NullFloat64 `db:"lat" ddl:"DOUBLE PRECISION" gorm:"column:lat"`
	Long     sql.NullFloat64 `db:"long" ddl:"DOUBLE PRECISION" gorm:"column:long"`
}

// StreamSegment is a stream segment with CUs and populations it carries.
type StreamSegment struct {
	Code        string `db:"code" ddl:"VARCHAR(255) PRIMARY KEY" gorm:"column:code;type:varchar(255);primaryKey"`
	Stripped    string `db:"stripped" ddl:"VARCHAR(255)" gorm:"column:stripped;type:varchar(255)"`
	StreamOrder int    `db:"stream_order" ddl:"INT" gorm:"column:stream_order"`
	Name        string `db:"name" ddl:"VARCHAR(255)" gorm:"column:name;type:varchar(255)"`

	// CUIDs and PopUIDs are comma-separated lists.
	CUIDs    string `db:"cu_ids" ddl:"TEXT" gorm:"column:cu_ids;type:text"`
	PopUIDs  string `db:"pop_uids" ddl:"TEXT" gorm:"column:pop_uids;type:text"`
	Geometry string `db:"geometry" ddl:"TEXT" gorm:"column:geometry;type:text"`
}

// BuildInfo describes the snapshot of the last export.
type BuildInfo struct {
	ID         string    `db:"id" ddl:"UUID PRIMARY KEY" gorm:"column:id;type:uuid;primaryKey"`
	Version    string    `db:"version" ddl:"VARCHAR(50)" gorm:"column:version;type:varchar(50)"`
	CreatedAt  time.Time `db:"created_at" ddl:"TIMESTAMP" gorm:"column:created_at"`
	ExportedAt time.Time `db:"exported_at" ddl:"TIMESTAMP" gorm:"column:exported_at"`

	// Report is the JSON encoded build report.
	Report string `db:"report" ddl:"TEXT" gorm:"column:report;type:text"`
}
