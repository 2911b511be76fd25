// Package popmatch resolves population time-series records to population
// keys of the unified population lookup.
//
// Resolution tries an ordered list of strategies and takes the first
// match. Records that no strategy resolves are excluded from the output.
package popmatch

import (
	"slices"
	"strings"

	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/table"
)

// DuplicateYear is a year that occurs more than once within a single
// time series of a population.
type DuplicateYear struct {
	Key    cu.PopKey
	TSName string
	Year   int
	// Rows are zero-based rows of the input series.
	Rows []int
}

// Result of matching a population time series.
type Result struct {
	// Series contains matched rows only, with an added Pop_UID column.
	Series *table.Table
	// TSNames are distinct time-series names per population in
	// first-seen order.
	TSNames map[cu.PopKey][]string
	// Unmatched are zero-based rows of the input that were dropped.
	Unmatched []int
	// ByStrategy counts resolved rows per strategy name.
	ByStrategy map[string]int
	// DuplicateYears are reported but kept in Series.
	DuplicateYears []DuplicateYear
}

// Matcher tries its strategies in order.
type Matcher struct {
	strategies []Strategy
}

// New creates a Matcher from strategies in priority order.
func New(strategies ...Strategy) *Matcher {
	return &Matcher{strategies: strategies}
}

// Default returns a matcher that tries the numeric ID first and falls
// back to the population name.
func Default(l *Lookup) *Matcher {
	return New(ByID(l), ByName(l))
}

// Resolve returns the key found by the first successful strategy and the
// strategy's name.
func (m *Matcher) Resolve(rec Record) (cu.PopKey, string, bool) {
	for _, s := range m.strategies {
		if key, ok := s.Match(rec); ok {
			return key, s.Name(), true
		}
	}
	return cu.PopKey{}, "", false
}

// Match resolves every row of a population time series. The series must
// have DataSet, TS_Name and Year columns. Pop_ID and Pop_Name are
// optional, missing columns read as NA.
func (m *Matcher) Match(series *table.Table) (*Result, error) {
	err := series.Require(cu.ColDataSet, cu.ColTSName, cu.ColYear)
	if err != nil {
		return nil, err
	}

	res := &Result{
		TSNames:    make(map[cu.PopKey][]string),
		ByStrategy: make(map[string]int),
	}

	uids := make([]string, series.Len())
	keys := make(map[string]cu.PopKey)
	for i := range series.Len() {
		rec := Record{
			DataSet: series.Get(i, cu.ColDataSet),
			PopID:   series.Get(i, cu.ColPopID),
			Name:    series.Get(i, cu.ColPopName),
		}
		key, name, ok := m.Resolve(rec)
		if !ok {
			res.Unmatched = append(res.Unmatched, i)
			continue
		}
		res.ByStrategy[name]++
		uids[i] = key.String()
		keys[uids[i]] = key

		ts := strings.TrimSpace(series.Get(i, cu.ColTSName))
		if ts != "" && !slices.Contains(res.TSNames[key], ts) {
			res.TSNames[key] = append(res.TSNames[key], ts)
		}
	}

	withUID := series.Clone()
	if err = withUID.SetColumn(cu.ColPopUID, uids); err != nil {
		return nil, err
	}
	res.Series = withUID.Filter(func(i int) bool {
		return uids[i] != ""
	})
	res.DuplicateYears = duplicateYears(series, uids, keys)

	return res, nil
}

type groupKey struct {
	uid    string
	tsName string
	year   int
}

func duplicateYears(
	series *table.Table,
	uids []string,
	keys map[string]cu.PopKey,
) []DuplicateYear {
	var order []groupKey
	rows := make(map[groupKey][]int)
	for i, uid := range uids {
		if uid == "" {
			continue
		}
		year, ok := cu.ParseYear(series.Get(i, cu.ColYear))
		if !ok {
			continue
		}
		k := groupKey{
			uid:    uid,
			tsName: strings.TrimSpace(series.Get(i, cu.ColTSName)),
			year:   year,
		}
		if _, ok := rows[k]; !ok {
			order = append(order, k)
		}
		rows[k] = append(rows[k], i)
	}

	var res []DuplicateYear
	for _, k := range order {
		if len(rows[k]) < 2 {
			continue
		}
		res = append(res, DuplicateYear{
			Key:    keys[k.uid],
			TSName: k.tsName,
			Year:   k.year,
			Rows:   rows[k],
		})
	}
	return res
}

// AttachTSNames writes colon-joined time-series names into the TS_Names
// column of the population lookup. The lookup must have a Pop_UID column.
func AttachTSNames(pops *table.Table, names map[cu.PopKey][]string) error {
	if err := pops.Require(cu.ColPopUID); err != nil {
		return err
	}
	byUID := make(map[string][]string, len(names))
	for k, v := range names {
		byUID[k.String()] = v
	}
	vals := make([]string, pops.Len())
	for i := range pops.Len() {
		uid := strings.TrimSpace(pops.Get(i, cu.ColPopUID))
		vals[i] = strings.Join(byUID[uid], cu.TSNamesSep)
	}
	return pops.SetColumn(cu.ColTSNames, vals)
}
