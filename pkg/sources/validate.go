package sources

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/gnlib"
)

// Validate checks the configuration for errors. Datasets that cudb does
// not know are removed with a warning. minVersion is the oldest supported
// version of the sources.yaml layout.
func (c *SourcesConfig) Validate(minVersion string) error {
	c.Version = strings.TrimSpace(c.Version)
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if !gnlib.IsVersion(c.Version) {
		return fmt.Errorf("version '%s' is not a semantic version", c.Version)
	}
	if gnlib.CmpVersion(c.Version, minVersion) < 0 {
		return fmt.Errorf(
			"version %s is too old, minimal supported version is %s",
			c.Version, minVersion,
		)
	}

	var missing []string
	for _, name := range cu.RequiredDatasets {
		if _, ok := c.Datasets[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required datasets are missing: %s",
			strings.Join(missing, ", "))
	}

	for name, d := range c.Datasets {
		if !isKnownDataset(name) {
			delete(c.Datasets, name)
			c.Warnings = append(c.Warnings, ValidationWarning{
				Dataset:    name,
				Field:      "datasets",
				Message:    fmt.Sprintf("unknown dataset '%s' is ignored", name),
				Suggestion: "Use one of: " + strings.Join(cu.Datasets, ", "),
			})
			continue
		}
		warnings, err := d.Validate(name)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", name, err)
		}
		c.Warnings = append(c.Warnings, warnings...)
		c.Datasets[name] = d
	}

	var seen []string
	for i, o := range c.Orderings {
		if o.Column == "" {
			return fmt.Errorf("ordering %d: column is required", i+1)
		}
		if len(o.Levels) == 0 {
			return fmt.Errorf("ordering %s: levels are required", o.Column)
		}
		if slices.Contains(seen, o.Column) {
			c.Warnings = append(c.Warnings, ValidationWarning{
				Field:      "orderings",
				Message:    fmt.Sprintf("ordering of %s is declared twice", o.Column),
				Suggestion: "Remove the duplicate, the first declaration is used",
			})
		}
		seen = append(seen, o.Column)
	}

	return nil
}

// Validate checks a single dataset configuration. File system checks are
// deferred to the I/O layer.
func (d *DatasetConfig) Validate(name string) ([]ValidationWarning, error) {
	var warnings []ValidationWarning
	if strings.TrimSpace(d.File) == "" {
		return nil, fmt.Errorf("file is required")
	}

	f := FileFormat(d.File)
	if f == UnknownFormat {
		return nil, fmt.Errorf(
			"unsupported file '%s': use .csv, .tsv or .xlsx", d.File,
		)
	}

	if d.Sheet != "" && f != XLSX {
		warnings = append(warnings, ValidationWarning{
			Dataset:    name,
			Field:      "sheet",
			Message:    "sheet is ignored for " + f.String() + " files",
			Suggestion: "Remove 'sheet' or convert the file to XLSX",
		})
		d.Sheet = ""
	}

	if name == cu.DatasetCULookup && (d.CUKey != "" || d.LookupColumn != "") {
		warnings = append(warnings, ValidationWarning{
			Dataset:    name,
			Field:      "cu_key",
			Message:    "CU lookup is translated by canonical_column",
			Suggestion: "Remove 'cu_key' and 'lookup_column' from cu_lookup",
		})
		d.CUKey, d.LookupColumn = "", ""
	}

	if name == cu.DatasetPopSeries && (d.CUKey != "" || d.LookupColumn != "") {
		warnings = append(warnings, ValidationWarning{
			Dataset:    name,
			Field:      "cu_key",
			Message:    name + " does not refer to legacy CU identifiers",
			Suggestion: "Remove 'cu_key' and 'lookup_column'",
		})
		d.CUKey, d.LookupColumn = "", ""
	}

	// CUs and Sites lists of the network are translated through
	// lookup_column, their column names are fixed.
	if name == cu.DatasetStreams && d.CUKey != "" {
		warnings = append(warnings, ValidationWarning{
			Dataset:    name,
			Field:      "cu_key",
			Message:    "streams keep CU identifiers in the CUs and Sites lists",
			Suggestion: "Remove 'cu_key', use 'lookup_column' for legacy lists",
		})
		d.CUKey = ""
	}
	return warnings, nil
}
