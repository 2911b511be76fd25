/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"

	"github.com/gnames/cudb/internal/iobuild"
	"github.com/gnames/cudb/internal/iodb"
	"github.com/gnames/cudb/internal/ioexport"
	"github.com/gnames/cudb/pkg/config"
	"github.com/gnames/cudb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getExportCmd() *cobra.Command {
	var (
		flags      buildFlags
		noSnapshot bool
	)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export reconciled CU database to PostgreSQL",
		Long: `Export builds the reconciled database and copies it to PostgreSQL.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks that the export schema exists
  3. Builds the snapshot from input datasets (see 'cudb build')
  4. Replaces data of all export tables with the snapshot

The export schema is created by 'cudb create'.

Examples:
  cudb export
  cudb export --sources ./sources.yaml
  cudb export --no-snapshot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd)
			if noSnapshot {
				opts = append(opts, config.OptBuildWithoutSnapshot(true))
			}
			err := runExport(opts)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	flags.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&flags.snapshot, "snapshot", "o", "",
		"path of the SQLite snapshot (default ~/.cache/cudb/snapshot.sqlite)")
	exportCmd.Flags().BoolVarP(&noSnapshot, "no-snapshot", "n", false,
		"do not save the snapshot")

	return exportCmd
}

func runExport(buildOpts []config.Option) error {
	ctx := context.Background()
	cfg.Update(buildOpts)

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return &gn.Error{
			Code: errcode.DBEmptyDatabaseError,
			Msg: `<err>Database appears to be empty.</err>
   Run <em>'cudb create'</em> first to initialize the schema.`,
			Err: errors.New("cannot export data into empty database"),
		}
	}

	s, rep, err := iobuild.New(cfg).Build(ctx)
	if err != nil {
		return err
	}

	exp := ioexport.New(cfg, op, rep)
	if err = exp.Export(ctx, s); err != nil {
		return err
	}

	gn.Info("Database <em>%s</em> is up to date", cfg.Database.Database)
	return nil
}
