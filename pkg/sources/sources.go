// Package sources provides configuration and validation of input datasets.
//
// This package defines the schema for sources.yaml, which tells cudb where
// to find every input table, which columns carry legacy CU identifiers, and
// which CU attributes have a fixed ordering.
//
// Example:
//
//	version: v0.2.0
//	parent: ~/data/cu
//	canonical_column: CU_ID_Report
//	datasets:
//	  cu_lookup:
//	    file: lookups/cu_lookup.csv
//	  cu_metrics:
//	    file: metrics.xlsx
//	    sheet: Metrics
//	    cu_key: CU_ID
//	    lookup_column: CU_ID_Alt2
//	orderings:
//	  - column: RunTiming
//	    levels: [Estu, Early Summer, Summer, Late, NA]
package sources

import "github.com/gnames/cudb/pkg/attrs"

type Sources interface {
	Load() (*SourcesConfig, error)
}

// SourcesConfig represents the complete sources.yaml configuration file.
type SourcesConfig struct {
	// Version of the sources.yaml layout, for example "v0.2.0".
	Version string `yaml:"version"`

	// Parent is the directory for relative dataset paths. If empty, the
	// data_dir setting of config.yaml or the directory of sources.yaml is
	// used.
	Parent string `yaml:"parent,omitempty"`

	// CanonicalColumn is the column of the CU lookup with canonical
	// CU_IDs. Default is CU_ID.
	CanonicalColumn string `yaml:"canonical_column,omitempty"`

	// Datasets maps dataset names to their settings.
	Datasets map[string]DatasetConfig `yaml:"datasets"`

	// Attributes joined onto metric rows. Empty means all known
	// attributes present in the CU lookup.
	Attributes []string `yaml:"attributes,omitempty"`

	// Orderings declare permitted levels of CU attributes.
	Orderings []attrs.Ordering `yaml:"orderings,omitempty"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Dataset    string // Name of the dataset
	Field      string // Field name that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// DatasetConfig describes one input table.
type DatasetConfig struct {
	// File is a CSV, TSV or XLSX file. Relative paths are resolved
	// against the parent directory.
	File string `yaml:"file"`

	// Sheet is the worksheet of an XLSX file. Default is the first one.
	Sheet string `yaml:"sheet,omitempty"`

	// CUKey is the column with CU identifiers. Default is CU_ID.
	CUKey string `yaml:"cu_key,omitempty"`

	// LookupColumn is the CU lookup column that uses the same identifier
	// scheme as CUKey. Default is CU_ID.
	LookupColumn string `yaml:"lookup_column,omitempty"`
}

// Format is a file format of a dataset.
type Format int

const (
	UnknownFormat Format = iota
	CSV
	TSV
	XLSX
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case TSV:
		return "tsv"
	case XLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}
