package iodb

import (
	"fmt"
	"strings"

	"github.com/gnames/cudb/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>
  3. Check <em>~/.config/cudb/config.yaml</em> or CUDB_DATABASE_* variables
     (database: %s)`
	vars := []any{host, port, host, user, database}
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot connect to %s:%d/%s: %w", host, port, database, err),
	}
}

// TableCheckError is returned when the list of tables cannot be checked.
func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Could not verify database state",
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// EmptyDatabaseError is returned when the export schema does not exist.
func EmptyDatabaseError(host, database string) error {
	msg := `Database on <em>%s</em> named <em>%s</em> has no tables

<em>How to fix:</em>
  Create the export schema first: <em>cudb create</em>`
	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: []any{host, database},
		Err: fmt.Errorf("database %s on %s has no tables, run 'cudb create'",
			database, host),
	}
}

// NotConnectedError is returned when a method is called before Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError is returned when a table lookup fails.
func TableExistsCheckError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  "Cannot check if table <em>%s</em> exists",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// QueryTablesError is returned when tables cannot be listed.
func QueryTablesError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Cannot list database tables",
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError is returned when a table name cannot be read.
func ScanTableError(err error) error {
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  "Cannot read database table names",
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

// TruncateTableError is returned when tables cannot be emptied.
func TruncateTableError(tables []string, err error) error {
	list := strings.Join(tables, ", ")
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot remove old data from <em>%s</em>",
		Vars: []any{list},
		Err:  fmt.Errorf("failed to truncate %s: %w", list, err),
	}
}
