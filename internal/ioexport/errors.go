package ioexport

import (
	"fmt"

	"github.com/gnames/cudb/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when export is attempted
// without database connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Export attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// NoSchemaError is returned when an export table does not exist.
func NoSchemaError(table string) error {
	msg := `Export table <em>%s</em> does not exist

<em>How to fix:</em>
  1. Create the schema: <em>cudb create</em>
  2. Or update an old schema: <em>cudb migrate</em>`
	return &gn.Error{
		Code: errcode.ExportTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("table %s does not exist", table),
	}
}

// ExportError is returned when data cannot be copied to a table.
func ExportError(table string, err error) error {
	msg := "Cannot export data to <em>%s</em>"
	return &gn.Error{
		Code: errcode.ExportError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to export %s: %w", table, err),
	}
}

// TransactionError is returned when the export transaction cannot start
// or commit.
func TransactionError(err error) error {
	return &gn.Error{
		Code: errcode.ExportError,
		Msg:  "Cannot complete export transaction",
		Err:  fmt.Errorf("export transaction failed: %w", err),
	}
}
