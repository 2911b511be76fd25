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
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gnames/cudb/pkg/config"
	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/summary"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSummaryCmd returns the summary command.
func getSummaryCmd() *cobra.Command {
	var (
		flags  buildFlags
		asJSON bool
	)

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print summary statistics of CU metrics",
		Long: `Summary builds the reconciled database without saving a snapshot
and prints statistics of every metric per DataType: number of values,
missing values, min, median, mean, max and counts of status labels.

Examples:
  cudb summary
  cudb summary --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSummary(flags.options(cmd), asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	flags.register(summaryCmd.Flags())
	summaryCmd.Flags().BoolVarP(&asJSON, "json", "j", false,
		"print summary as JSON")

	return summaryCmd
}

func runSummary(buildOpts []config.Option, asJSON bool) error {
	s, err := buildSnapshot(buildOpts)
	if err != nil {
		return err
	}

	res, err := summary.Metrics(s.Metrics().Wide)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(res)
	}
	return writeSummary(os.Stdout, res)
}

func writeSummary(out io.Writer, res []summary.Metric) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DataType\tMetric\tCount\tNA\tMin\tMedian\tMean\tMax\tStatus")
	for _, v := range res {
		var status []string
		for _, l := range cu.StatusScale.Levels() {
			if n, ok := v.Status[l]; ok {
				status = append(status, fmt.Sprintf("%s:%d", l, n))
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3g\t%.3g\t%.3g\t%.3g\t%s\n",
			v.DataType, v.Metric, v.Count, v.NA,
			v.Min, v.Median, v.Mean, v.Max,
			strings.Join(status, " "),
		)
	}
	return w.Flush()
}
