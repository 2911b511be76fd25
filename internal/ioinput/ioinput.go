// Package ioinput reads input datasets from CSV, TSV and XLSX files into
// string tables.
package ioinput

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gnames/cudb/pkg/sources"
	"github.com/gnames/cudb/pkg/table"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/xuri/excelize/v2"
)

// naTokens are cell values that mean "no data" in spreadsheets exported by
// R and Excel.
var naTokens = []string{"NA", "#N/A", "N/A", "NaN"}

var errHeader = errors.New("empty or duplicate column name")

// Read loads a dataset described by d. The path of d must already be
// resolved.
func Read(name string, d sources.DatasetConfig) (*table.Table, error) {
	if _, err := os.Stat(d.File); err != nil {
		return nil, FileNotFoundError(name, d.File, err)
	}

	var rows [][]string
	var err error
	switch f := sources.FileFormat(d.File); f {
	case sources.CSV:
		rows, err = readDelimited(d.File, ',')
	case sources.TSV:
		rows, err = readDelimited(d.File, '\t')
	case sources.XLSX:
		rows, err = readXLSX(name, d.File, d.Sheet)
	default:
		return nil, FormatError(name, d.File, errors.New("unsupported format"))
	}
	if err != nil {
		var gnErr *gn.Error
		if errors.As(err, &gnErr) {
			return nil, err
		}
		return nil, ReadError(name, d.File, err)
	}

	res, err := toTable(name, rows)
	if err != nil {
		return nil, FormatError(name, d.File, err)
	}
	return res, nil
}

func readDelimited(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var res [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, nil
}

// readXLSX reads rows of a worksheet. If sheet is empty, the first sheet
// of the workbook is used.
func readXLSX(name, path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	if !slices.Contains(sheets, sheet) {
		return nil, SheetError(name, path, sheet, sheets)
	}
	return f.GetRows(sheet)
}

// toTable uses the first row as a header. Cells are trimmed, invalid
// UTF-8 is fixed and NA tokens become table.NA. Rows with no data at all
// are skipped.
func toTable(name string, rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, errors.New("file is empty")
	}

	header := make([]string, len(rows[0]))
	for i, v := range rows[0] {
		v = strings.TrimPrefix(v, "\ufeff")
		header[i] = strings.TrimSpace(gnlib.FixUtf8(v))
	}
	for i, v := range header {
		if v == "" || slices.Contains(header[:i], v) {
			return nil, errHeader
		}
	}

	res := table.New(name, header...)
	for _, row := range rows[1:] {
		vals := make([]string, len(header))
		empty := true
		for i := range min(len(row), len(header)) {
			v := cell(row[i])
			vals[i] = v
			if v != table.NA {
				empty = false
			}
		}
		if empty {
			continue
		}
		res.Append(vals...)
	}
	return res, nil
}

func cell(s string) string {
	s = strings.TrimSpace(gnlib.FixUtf8(s))
	if slices.Contains(naTokens, s) {
		return table.NA
	}
	return s
}
