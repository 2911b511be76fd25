package iobuild

import (
	"fmt"

	"github.com/gnames/cudb/pkg/errcode"
	"github.com/gnames/gn"
)

// BuildError creates an error for input datasets that cannot be
// reconciled.
func BuildError(err error) error {
	msg := `Cannot build CU database from input datasets

<em>Possible causes:</em>
  - A required column is missing from a dataset
  - The canonical column is absent from the CU lookup

<em>How to fix:</em>
  1. Check the log file for details
  2. Compare dataset headers with sources.yaml settings`

	return &gn.Error{
		Code: errcode.BuildError,
		Msg:  msg,
		Err:  fmt.Errorf("build failed: %w", err),
	}
}
