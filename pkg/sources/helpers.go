package sources

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/snapshot"
)

// FileFormat detects the format of a dataset file by its extension.
func FileFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV
	case ".tsv", ".tab", ".txt":
		return TSV
	case ".xlsx", ".xlsm":
		return XLSX
	default:
		return UnknownFormat
	}
}

// DatasetNames returns configured datasets in loading order.
func (c *SourcesConfig) DatasetNames() []string {
	var res []string
	for _, name := range cu.Datasets {
		if _, ok := c.Datasets[name]; ok {
			res = append(res, name)
		}
	}
	return res
}

// Keys converts CU key settings of datasets for the snapshot builder.
func (c *SourcesConfig) Keys() map[string]snapshot.Key {
	res := make(map[string]snapshot.Key)
	for name, d := range c.Datasets {
		if d.CUKey == "" && d.LookupColumn == "" {
			continue
		}
		res[name] = snapshot.Key{Column: d.CUKey, LookupColumn: d.LookupColumn}
	}
	return res
}

// ResolvePath returns the path of a dataset file. Relative paths are
// joined with the parent directory.
func ResolvePath(parent, file string) string {
	if filepath.IsAbs(file) || parent == "" {
		return file
	}
	return filepath.Join(parent, file)
}

func isKnownDataset(name string) bool {
	return slices.Contains(cu.Datasets, name)
}
