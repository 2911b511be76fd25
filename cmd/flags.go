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
	"path/filepath"
	"strings"

	"github.com/gnames/cudb/internal/iologger"
	"github.com/gnames/cudb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// buildFlags are flags shared by commands that run a build.
type buildFlags struct {
	sources  string
	snapshot string
	dataDir  string
}

func (f *buildFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.sources, "sources", "s", "",
		"path to sources.yaml (default ~/.config/cudb/sources.yaml)")
	fs.StringVarP(&f.dataDir, "data-dir", "d", "",
		"directory for relative dataset paths")
}

// options converts flags that were set by a user to config options.
func (f *buildFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("sources") {
		res = append(res, config.OptBuildSourcesFile(f.sources))
	}
	if cmd.Flags().Changed("data-dir") {
		res = append(res, config.OptBuildDataDir(f.dataDir))
	}
	if cmd.Flags().Changed("snapshot") {
		res = append(res, config.OptBuildSnapshotFile(f.snapshot))
	}
	return res
}

// splitArgs allows IDs given as separate arguments or comma-separated.
func splitArgs(args []string) []string {
	var res []string
	for _, v := range args {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				res = append(res, id)
			}
		}
	}
	return res
}

func logFile() string {
	return filepath.Join(config.LogDir(cfg.HomeDir), iologger.LogFile)
}
