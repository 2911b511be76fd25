// Package streams reduces the stream network to segments that route to
// CUs of the reconciled database.
package streams

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/table"
)

const (
	codeSep = "-"
	listSep = ":"
	joinSep = ","
)

// Segment is a stream segment with selectable CUs and populations.
type Segment struct {
	// Code is the hierarchical watershed code.
	Code string
	// Stripped is the code without trailing all-zero parts.
	Stripped string
	// Order is the number of parts of the stripped code.
	Order int
	// Name is the network name, or the stripped code.
	Name string
	// CUs are sorted CU_IDs present in the database.
	CUs []string
	// Pops are sorted Pop_UIDs present in the database.
	Pops []string
	// Geometry is kept as read.
	Geometry string
}

// CUList returns comma-joined CUs.
func (s Segment) CUList() string {
	return strings.Join(s.CUs, joinSep)
}

// PopList returns comma-joined populations.
func (s Segment) PopList() string {
	return strings.Join(s.Pops, joinSep)
}

// Result of reducing a stream network.
type Result struct {
	// Segments are sorted by stream order, lowest first.
	Segments []Segment
	// Dropped counts segments without selectable CUs.
	Dropped int
}

// StripCode removes trailing parts that consist of zeros only.
func StripCode(code string) string {
	parts := strings.Split(strings.TrimSpace(code), codeSep)
	for len(parts) > 0 && isZeros(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, codeSep)
}

// Order returns the depth of a watershed code in the stream tree.
func Order(code string) int {
	s := StripCode(code)
	if s == "" {
		return 0
	}
	return strings.Count(s, codeSep) + 1
}

func isZeros(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "0") == ""
}

// Reduce keeps members of each segment that exist in the given CU and
// population universes and drops segments without CUs. The network must
// have a Code column, CUs, Sites, Name and Geometry are optional.
func Reduce(
	net *table.Table,
	cuIDs, popUIDs []string,
) (*Result, error) {
	if err := net.Require(cu.ColCode); err != nil {
		return nil, err
	}
	cus := toSet(cuIDs)
	pops := toSet(popUIDs)

	res := &Result{}
	for i := range net.Len() {
		seg := Segment{
			Code:     strings.TrimSpace(net.Get(i, cu.ColCode)),
			CUs:      intersect(net.Get(i, cu.ColCUs), cus),
			Pops:     intersect(net.Get(i, cu.ColSites), pops),
			Geometry: net.Get(i, cu.ColGeometry),
		}
		if len(seg.CUs) == 0 {
			res.Dropped++
			continue
		}
		seg.Stripped = StripCode(seg.Code)
		seg.Order = Order(seg.Code)
		seg.Name = strings.TrimSpace(net.Get(i, cu.ColName))
		if seg.Name == "" {
			seg.Name = seg.Stripped
		}
		res.Segments = append(res.Segments, seg)
	}

	slices.SortStableFunc(res.Segments, func(a, b Segment) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return res, nil
}

// Translate returns a copy of the network with CU identifiers of the CUs
// list and of the Pop_UIDs in the Sites list converted by lookup.
// Members that lookup does not know are removed.
func Translate(
	net *table.Table,
	lookup func(string) (string, bool),
) *table.Table {
	res := net.Clone()
	for i := range res.Len() {
		if res.Has(cu.ColCUs) {
			res.Set(i, cu.ColCUs, translateList(res.Get(i, cu.ColCUs), lookup))
		}
		if res.Has(cu.ColSites) {
			res.Set(i, cu.ColSites, translateList(res.Get(i, cu.ColSites),
				func(s string) (string, bool) {
					key, err := cu.ParsePopKey(s)
					if err != nil {
						return "", false
					}
					id, ok := lookup(key.CUID)
					if !ok {
						return "", false
					}
					return cu.NewPopKey(id, key.PopID).String(), true
				}))
		}
	}
	return res
}

func translateList(list string, lookup func(string) (string, bool)) string {
	var res []string
	for _, v := range strings.Split(list, listSep) {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if id, ok := lookup(v); ok {
			res = append(res, id)
		}
	}
	return strings.Join(res, listSep)
}

// Table flattens segments into a string table.
func (r *Result) Table(name string) *table.Table {
	res := table.New(name,
		cu.ColCode, "Stripped", "Order", cu.ColName,
		cu.ColCUs, cu.ColSites, cu.ColGeometry,
	)
	for _, s := range r.Segments {
		res.Append(
			s.Code, s.Stripped, strconv.Itoa(s.Order), s.Name,
			s.CUList(), s.PopList(), s.Geometry,
		)
	}
	return res
}

func intersect(list string, universe map[string]struct{}) []string {
	var res []string
	for _, v := range strings.Split(list, listSep) {
		v = strings.TrimSpace(v)
		if _, ok := universe[v]; !ok || v == "" {
			continue
		}
		if !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	slices.Sort(res)
	return res
}

func toSet(vals []string) map[string]struct{} {
	res := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		res[v] = struct{}{}
	}
	return res
}
