// Package cu defines entities of the reconciled Conservation Unit database:
// Conservation Units, Populations and their composite keys, together with
// the column names the pipeline expects in its input tables.
package cu

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gnames/cudb/pkg/category"
)

// Column names used by input and output tables.
const (
	ColCUID        = "CU_ID"
	ColCUName      = "CU_Name"
	ColSpecies     = "Species"
	ColZone        = "FAZ"
	ColArea        = "Area"
	ColRunTiming   = "RunTiming"
	ColLifeHistory = "LifeHistory"
	ColAvGen       = "AvGen"

	ColPopID    = "Pop_ID"
	ColPopName  = "Pop_Name"
	ColPopUID   = "Pop_UID"
	ColDataSet  = "DataSet"
	ColTSName   = "TS_Name"
	ColTSNames  = "TS_Names"
	ColLat      = "Lat"
	ColLong     = "Long"
	ColWSKey    = "WSKey"
	ColSiteName = "SiteName"
	ColGeometry = "Geometry"

	ColYear     = "Year"
	ColDataType = "DataType"
	ColMetric   = "Metric"
	ColValue    = "Value"
	ColStatus   = "Status"

	ColCode  = "Code"
	ColCUs   = "CUs"
	ColSites = "Sites"
	ColName  = "Name"

	ColHasMetricsData    = "HasMetricsData"
	ColHasTimeSeriesData = "HasTimeSeriesData"
	ColDataStartYear     = "DataStartYear"
	ColDataEndYear       = "DataEndYear"
)

// Names of input datasets.
const (
	DatasetCULookup   = "cu_lookup"
	DatasetPopLookup  = "pop_lookup"
	DatasetMetrics    = "cu_metrics"
	DatasetCUSeries   = "cu_timeseries"
	DatasetPopSeries  = "pop_timeseries"
	DatasetBoundaries = "cu_boundaries"
	DatasetSites      = "pop_sites"
	DatasetStreams    = "streams"
)

// Datasets lists all input datasets in loading order.
var Datasets = []string{
	DatasetCULookup, DatasetPopLookup, DatasetMetrics, DatasetCUSeries,
	DatasetPopSeries, DatasetBoundaries, DatasetSites, DatasetStreams,
}

// RequiredDatasets cannot be omitted from a build.
var RequiredDatasets = []string{
	DatasetCULookup, DatasetPopLookup, DatasetMetrics,
}

// AttributeColumns are static CU attributes joined onto metric rows.
var AttributeColumns = []string{
	ColSpecies, ColZone, ColArea, ColRunTiming, ColLifeHistory, ColAvGen,
}

// PopKeySep separates CU_ID and Pop_ID in a serialized Pop_UID.
const PopKeySep = "."

// TSNamesSep joins names of time series known for a population.
const TSNamesSep = ":"

// StatusScale orders metric status values.
var StatusScale = category.NewScale("Status", "Red", "Amber", "Green")

// PopKey is the composite key of a population.
type PopKey struct {
	CUID  string
	PopID string
}

// ErrPopKey is returned for strings that cannot be parsed as Pop_UID.
var ErrPopKey = errors.New("malformed Pop_UID")

// NewPopKey creates a key from its parts. Surrounding spaces are removed.
func NewPopKey(cuID, popID string) PopKey {
	return PopKey{CUID: strings.TrimSpace(cuID), PopID: strings.TrimSpace(popID)}
}

// String serializes the key as Pop_UID. A key with a missing part
// serializes to an empty string.
func (k PopKey) String() string {
	if k.IsZero() {
		return ""
	}
	return k.CUID + PopKeySep + k.PopID
}

// IsZero returns true if any part of the key is missing.
func (k PopKey) IsZero() bool {
	return k.CUID == "" || k.PopID == ""
}

// ParsePopKey converts Pop_UID back into a key. Population IDs never
// contain the separator, so the string is split at its last separator.
func ParsePopKey(s string) (PopKey, error) {
	s = strings.TrimSpace(s)
	idx := strings.LastIndex(s, PopKeySep)
	if idx < 1 || idx == len(s)-1 {
		return PopKey{}, fmt.Errorf("%w: '%s'", ErrPopKey, s)
	}
	return NewPopKey(s[:idx], s[idx+1:]), nil
}

// YearRange is the first and last year of data coverage.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
	// Valid is false when there is no coverage (NA).
	Valid bool `json:"valid"`
}

// Extend widens the range to include the year.
func (r YearRange) Extend(year int) YearRange {
	if !r.Valid {
		return YearRange{Start: year, End: year, Valid: true}
	}
	r.Start = min(r.Start, year)
	r.End = max(r.End, year)
	return r
}

// CU is a reconciled Conservation Unit.
type CU struct {
	ID          string `json:"cuId"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Zone        string `json:"zone"`
	Area        string `json:"area"`
	RunTiming   string `json:"runTiming"`
	LifeHistory string `json:"lifeHistory"`
	AvGen       string `json:"avGen"`

	HasMetricsData    bool      `json:"hasMetricsData"`
	HasTimeSeriesData bool      `json:"hasTimeSeriesData"`
	Years             YearRange `json:"years"`
}

// FullName is the display name of a CU.
func (c CU) FullName() string {
	if c.Name == "" {
		return c.ID
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// Population is a reconciled population.
type Population struct {
	Key     PopKey `json:"-"`
	UID     string `json:"popUid"`
	Name    string `json:"name"`
	Species string `json:"species"`
	DataSet string `json:"dataSet"`
	WSKey   string `json:"wsKey"`

	// Lat and Long are NaN when coordinates are unknown.
	Lat  float64 `json:"-"`
	Long float64 `json:"-"`

	// TSNames are names of the time series matched to the population.
	TSNames []string `json:"tsNames"`

	HasTimeSeriesData bool      `json:"hasTimeSeriesData"`
	Years             YearRange `json:"years"`
}

// HasCoords checks if population coordinates are known.
func (p Population) HasCoords() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Long)
}

// ShortName is the population name, or its key if the name is unknown.
func (p Population) ShortName() string {
	if p.Name == "" {
		return p.Key.String()
	}
	return p.Name
}

// FullName is the display name of a population.
func (p Population) FullName() string {
	return fmt.Sprintf("%s (%s)", p.ShortName(), p.Key.String())
}

// YesNo converts a flag into the Yes/No labels of availability fields.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// ParseYear converts a year cell into an integer.
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ParseFloat converts a numeric cell into a float. Missing or
// malformed values are NaN.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
