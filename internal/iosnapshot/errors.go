package iosnapshot

import (
	"fmt"

	"github.com/gnames/cudb/pkg/errcode"
	"github.com/gnames/gn"
)

// WriteError is returned when a snapshot cannot be saved.
func WriteError(path string, err error) error {
	msg := `Cannot save snapshot to <em>%s</em>

<em>How to fix:</em>
  1. Check permissions of the directory
  2. Use <em>--snapshot</em> to choose another file
  3. Use <em>--no-snapshot</em> to skip saving`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.SnapshotWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write snapshot %s: %w", path, err),
	}
}
