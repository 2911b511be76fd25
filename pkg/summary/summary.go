// Package summary computes descriptive statistics of wide metric rows.
package summary

import (
	"cmp"
	"math"
	"slices"

	"github.com/gnames/cudb/pkg/category"
	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/reshape"
	"github.com/montanaflynn/stats"
)

// Metric summarizes one metric of one DataType.
type Metric struct {
	DataType string `json:"dataType"`
	Metric   string `json:"metric"`
	// Count is the number of rows with a value.
	Count int `json:"count"`
	// NA is the number of rows without a value.
	NA     int     `json:"na"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
	// Status counts rows per status label.
	Status map[string]int `json:"status"`
}

// Metrics summarizes every (DataType, Metric) pair, sorted by DataType and
// then by metric order of the wide table. Statistics of a metric without
// values are zero.
func Metrics(w *reshape.Wide) ([]Metric, error) {
	type pair struct {
		dt string
		mi int
	}
	vals := make(map[pair][]float64)
	res := make(map[pair]*Metric)

	for _, r := range w.Rows {
		for mi, m := range w.Metrics {
			p := pair{dt: r.DataType, mi: mi}
			sm, ok := res[p]
			if !ok {
				sm = &Metric{
					DataType: r.DataType,
					Metric:   m,
					Status:   make(map[string]int),
				}
				res[p] = sm
			}

			if st := r.Status[mi]; st != category.NA {
				sm.Status[cu.StatusScale.Label(st)]++
			}
			v := r.Values[mi]
			if math.IsNaN(v) {
				sm.NA++
				continue
			}
			vals[p] = append(vals[p], v)
		}
	}

	keys := make([]pair, 0, len(res))
	for p := range res {
		keys = append(keys, p)
	}
	slices.SortFunc(keys, func(a, b pair) int {
		return cmp.Or(cmp.Compare(a.dt, b.dt), cmp.Compare(a.mi, b.mi))
	})

	out := make([]Metric, 0, len(keys))
	for _, p := range keys {
		sm := res[p]
		if data := vals[p]; len(data) > 0 {
			if err := describe(sm, data); err != nil {
				return nil, err
			}
		}
		out = append(out, *sm)
	}
	return out, nil
}

func describe(sm *Metric, data []float64) error {
	var err error
	sm.Count = len(data)
	if sm.Min, err = stats.Min(data); err != nil {
		return err
	}
	if sm.Max, err = stats.Max(data); err != nil {
		return err
	}
	if sm.Mean, err = stats.Mean(data); err != nil {
		return err
	}
	if sm.Median, err = stats.Median(data); err != nil {
		return err
	}
	if sm.StdDev, err = stats.StandardDeviation(data); err != nil {
		return err
	}
	return nil
}
