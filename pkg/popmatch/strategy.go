package popmatch

import (
	"math"
	"strconv"
	"strings"

	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/table"
)

// Record is the part of a time-series row used for matching.
type Record struct {
	// DataSet is the data-source label of the record.
	DataSet string
	// PopID is a numeric population identifier, can be empty.
	PopID string
	// Name is the population name, can be empty.
	Name string
}

// Strategy resolves a record to a population key.
type Strategy interface {
	// Name identifies the strategy in statistics.
	Name() string
	// Match returns the key of the first matching lookup row.
	Match(rec Record) (cu.PopKey, bool)
}

type idKey struct {
	dataSet string
	id      int64
}

type nameKey struct {
	dataSet string
	name    string
}

// Lookup indexes the unified population lookup table by
// (DataSet, numeric Pop_ID) and by (DataSet, Pop_Name). Each index keeps
// lookup order, so the first matching row wins.
type Lookup struct {
	byID   map[idKey]cu.PopKey
	byName map[nameKey]cu.PopKey
}

// NewLookup indexes rows of the population lookup that have a Pop_UID.
func NewLookup(pops *table.Table) (*Lookup, error) {
	err := pops.Require(
		cu.ColCUID, cu.ColPopID, cu.ColPopName, cu.ColDataSet,
	)
	if err != nil {
		return nil, err
	}

	res := &Lookup{
		byID:   make(map[idKey]cu.PopKey),
		byName: make(map[nameKey]cu.PopKey),
	}

	for i := range pops.Len() {
		key := cu.NewPopKey(pops.Get(i, cu.ColCUID), pops.Get(i, cu.ColPopID))
		if key.IsZero() {
			continue
		}
		ds := strings.TrimSpace(pops.Get(i, cu.ColDataSet))

		if id, ok := parseID(pops.Get(i, cu.ColPopID)); ok {
			k := idKey{dataSet: ds, id: id}
			if _, ok := res.byID[k]; !ok {
				res.byID[k] = key
			}
		}

		if name := strings.TrimSpace(pops.Get(i, cu.ColPopName)); name != "" {
			k := nameKey{dataSet: ds, name: name}
			if _, ok := res.byName[k]; !ok {
				res.byName[k] = key
			}
		}
	}
	return res, nil
}

type byID struct {
	l *Lookup
}

// ByID matches records by data-source label and numeric population ID.
// It is the authoritative strategy.
func ByID(l *Lookup) Strategy {
	return byID{l: l}
}

func (byID) Name() string {
	return "id"
}

func (s byID) Match(rec Record) (cu.PopKey, bool) {
	id, ok := parseID(rec.PopID)
	if !ok {
		return cu.PopKey{}, false
	}
	k := idKey{dataSet: strings.TrimSpace(rec.DataSet), id: id}
	key, ok := s.l.byID[k]
	return key, ok
}

type byName struct {
	l *Lookup
}

// ByName matches records by data-source label and population name. It is
// a fallback for sources without numeric IDs.
func ByName(l *Lookup) Strategy {
	return byName{l: l}
}

func (byName) Name() string {
	return "name"
}

func (s byName) Match(rec Record) (cu.PopKey, bool) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return cu.PopKey{}, false
	}
	k := nameKey{dataSet: strings.TrimSpace(rec.DataSet), name: name}
	key, ok := s.l.byName[k]
	return key, ok
}

// parseID accepts integers, including integers written as floats
// ("7.0").
func parseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
