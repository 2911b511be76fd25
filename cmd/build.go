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

	"github.com/gnames/cudb/internal/iobuild"
	"github.com/gnames/cudb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getBuildCmd returns the build command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getBuildCmd() *cobra.Command {
	var (
		flags      buildFlags
		noSnapshot bool
	)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build reconciled CU database from input datasets",
		Long: `Build reads input datasets and reconciles them into a snapshot.

This command:
  1. Reads sources.yaml to find input datasets
  2. Loads CSV, TSV and XLSX files concurrently
  3. Translates legacy CU identifiers to canonical CU_IDs
  4. Matches population time series to populations
  5. Pivots metrics and joins CU attributes
  6. Reports recoverable problems (collisions, unmatched records)
  7. Saves the snapshot to a SQLite file

Input datasets are configured in: ~/.config/cudb/sources.yaml
The snapshot is saved to: ~/.cache/cudb/snapshot.sqlite

Examples:
  cudb build
  cudb build --sources ./sources.yaml --data-dir ./data
  cudb build -o ./cudb.sqlite
  cudb build --no-snapshot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd)
			if noSnapshot {
				opts = append(opts, config.OptBuildWithoutSnapshot(true))
			}
			err := runBuild(opts)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	flags.register(buildCmd.Flags())
	buildCmd.Flags().StringVarP(&flags.snapshot, "snapshot", "o", "",
		"path of the SQLite snapshot (default ~/.cache/cudb/snapshot.sqlite)")
	buildCmd.Flags().BoolVarP(&noSnapshot, "no-snapshot", "n", false,
		"do not save the snapshot")

	return buildCmd
}

func runBuild(buildOpts []config.Option) error {
	ctx := context.Background()
	cfg.Update(buildOpts)

	_, rep, err := iobuild.New(cfg).Build(ctx)
	if err != nil {
		return err
	}

	if rep.HasIssues() {
		gn.Info(`Build finished with warnings.
   Details are in the log file: <em>%s</em>`, logFile())
	}
	return nil
}
