package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaIndexError

	// Sources errors
	SourcesConfigError

	// Input errors
	InputFileNotFoundError
	InputReadError
	InputFormatError
	InputSheetError

	// Build errors
	BuildError

	// Snapshot errors
	SnapshotWriteError

	// Export errors
	ExportError
	ExportTableError
)
