package ioinput

import (
	"fmt"
	"strings"

	"github.com/gnames/cudb/pkg/errcode"
	"github.com/gnames/gn"
)

// FileNotFoundError is returned when a configured dataset file is absent.
func FileNotFoundError(dataset, path string, err error) error {
	msg := `Cannot find input file of <em>%s</em>

<em>File:</em> %s

<em>How to fix:</em>
  1. Check the path in sources.yaml
  2. Remove optional datasets that are not available`
	vars := []any{dataset, path}
	return &gn.Error{
		Code: errcode.InputFileNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("input file %s not found: %w", path, err),
	}
}

// ReadError is returned when a dataset file cannot be parsed.
func ReadError(dataset, path string, err error) error {
	msg := "Cannot read <em>%s</em> from %s"
	vars := []any{dataset, path}
	return &gn.Error{
		Code: errcode.InputReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// FormatError is returned when a file has no usable header.
func FormatError(dataset, path string, err error) error {
	msg := `Input <em>%s</em> has wrong format

<em>File:</em> %s

The first row must contain unique, non-empty column names.`
	vars := []any{dataset, path}
	return &gn.Error{
		Code: errcode.InputFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("bad format of %s: %w", path, err),
	}
}

// SheetError is returned when an XLSX workbook has no requested sheet.
func SheetError(dataset, path, sheet string, sheets []string) error {
	msg := `Sheet <em>%s</em> of <em>%s</em> does not exist

<em>File:</em> %s
<em>Available sheets:</em> %s`
	vars := []any{sheet, dataset, path, strings.Join(sheets, ", ")}
	return &gn.Error{
		Code: errcode.InputSheetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("sheet %s not found in %s", sheet, path),
	}
}
