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
	"fmt"
	"math"

	"github.com/gnames/cudb/internal/iobuild"
	"github.com/gnames/cudb/pkg/config"
	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/snapshot"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// cuView is a CU with its populations as printed by 'show cu'.
type cuView struct {
	cu.CU
	FullName    string    `json:"fullName"`
	Populations []popView `json:"populations"`
}

// popView is a population as printed by 'show'.
type popView struct {
	cu.Population
	CUID     string   `json:"cuId"`
	PopID    string   `json:"popId"`
	FullName string   `json:"fullName"`
	Lat      *float64 `json:"lat"`
	Long     *float64 `json:"long"`
}

// getShowCmd returns the show command with its cu and pop subcommands.
func getShowCmd() *cobra.Command {
	var flags buildFlags

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print reconciled CUs or populations as JSON",
		Long: `Show builds the reconciled database without saving a snapshot
and prints requested records as JSON.

Examples:
  cudb show cu SEL-01-01
  cudb show cu SEL-01-01,SEL-01-02
  cudb show pop SEL-01-01.12`,
	}
	flags.register(showCmd.PersistentFlags())

	cuCmd := &cobra.Command{
		Use:   "cu <CU_ID>...",
		Short: "Print CUs with their populations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runShowCU(flags.options(cmd), splitArgs(args))
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	popCmd := &cobra.Command{
		Use:   "pop <Pop_UID>...",
		Short: "Print populations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runShowPop(flags.options(cmd), splitArgs(args))
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	showCmd.AddCommand(cuCmd, popCmd)
	return showCmd
}

func runShowCU(buildOpts []config.Option, ids []string) error {
	s, err := buildSnapshot(buildOpts)
	if err != nil {
		return err
	}

	res := make([]cuView, 0, len(ids))
	for _, id := range ids {
		c, ok := s.CU(id)
		if !ok {
			gn.Warn("CU <em>%s</em> not found", id)
			continue
		}
		v := cuView{CU: c, FullName: c.FullName(), Populations: []popView{}}
		for _, key := range s.PopsForCUs([]string{id}) {
			p, _ := s.Population(key)
			v.Populations = append(v.Populations, newPopView(p))
		}
		res = append(res, v)
	}
	return printJSON(res)
}

func runShowPop(buildOpts []config.Option, uids []string) error {
	s, err := buildSnapshot(buildOpts)
	if err != nil {
		return err
	}

	res := make([]popView, 0, len(uids))
	for _, uid := range uids {
		key, err := cu.ParsePopKey(uid)
		if err != nil {
			gn.Warn("<em>%s</em> is not a valid Pop_UID", uid)
			continue
		}
		p, ok := s.Population(key)
		if !ok {
			gn.Warn("Population <em>%s</em> not found", uid)
			continue
		}
		res = append(res, newPopView(p))
	}
	return printJSON(res)
}

// buildSnapshot runs a build that does not overwrite the saved snapshot.
func buildSnapshot(buildOpts []config.Option) (*snapshot.Snapshot, error) {
	buildOpts = append(buildOpts, config.OptBuildWithoutSnapshot(true))
	cfg.Update(buildOpts)
	s, _, err := iobuild.New(cfg).Build(context.Background())
	return s, err
}

func newPopView(p cu.Population) popView {
	return popView{
		Population: p,
		CUID:       p.Key.CUID,
		PopID:      p.Key.PopID,
		FullName:   p.FullName(),
		Lat:        coord(p.Lat),
		Long:       coord(p.Long),
	}
}

func coord(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func printJSON(v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(v)
	if err != nil {
		return err
	}
	fmt.Println(string(bs))
	return nil
}
