// Package snapshot builds and holds the reconciled CU database.
//
// A Snapshot is created once by Build and is read-only afterwards, so it
// can be shared by any number of concurrent readers. Accessors return
// copies of internal slices and tables.
package snapshot

import (
	"slices"
	"time"

	"github.com/gnames/cudb/pkg/attrs"
	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/streams"
	"github.com/gnames/cudb/pkg/table"
)

// Snapshot is the result of a build.
type Snapshot struct {
	id      string
	created time.Time

	cus     []cu.CU
	cuIndex map[string]int

	pops     []cu.Population
	popIndex map[cu.PopKey]int
	popNames map[string]string

	metrics    *attrs.Joined
	cuSeries   *table.Table
	popSeries  *table.Table
	boundaries *table.Table
	sites      *table.Table
	streams    []streams.Segment
}

// ID is a random identifier of the build.
func (s *Snapshot) ID() string {
	return s.id
}

// Created is the time of the build.
func (s *Snapshot) Created() time.Time {
	return s.created
}

// CUs returns all CUs in lookup order.
func (s *Snapshot) CUs() []cu.CU {
	return slices.Clone(s.cus)
}

// Populations returns all populations in lookup order.
func (s *Snapshot) Populations() []cu.Population {
	return slices.Clone(s.pops)
}

// Metrics returns wide metric rows with CU attributes. The result must
// not be modified.
func (s *Snapshot) Metrics() *attrs.Joined {
	return s.metrics
}

// CUSeries returns the CU time series.
func (s *Snapshot) CUSeries() *table.Table {
	return cloneTable(s.cuSeries)
}

// PopSeries returns matched population time series.
func (s *Snapshot) PopSeries() *table.Table {
	return cloneTable(s.popSeries)
}

// Boundaries returns CU boundaries.
func (s *Snapshot) Boundaries() *table.Table {
	return cloneTable(s.boundaries)
}

// Sites returns population sites, one per population at most.
func (s *Snapshot) Sites() *table.Table {
	return cloneTable(s.sites)
}

// Streams returns stream segments, lower stream order first.
func (s *Snapshot) Streams() []streams.Segment {
	return slices.Clone(s.streams)
}

// CU returns a CU by its CU_ID.
func (s *Snapshot) CU(cuID string) (cu.CU, bool) {
	i, ok := s.cuIndex[cuID]
	if !ok {
		return cu.CU{}, false
	}
	return s.cus[i], true
}

// Population returns a population by its key.
func (s *Snapshot) Population(key cu.PopKey) (cu.Population, bool) {
	i, ok := s.popIndex[key]
	if !ok {
		return cu.Population{}, false
	}
	return s.pops[i], true
}

// CUFullName returns the display name of a CU, or the CU_ID itself if
// the CU is unknown.
func (s *Snapshot) CUFullName(cuID string) string {
	c, ok := s.CU(cuID)
	if !ok {
		return cuID
	}
	return c.FullName()
}

// PopFullName returns the display name of a population with its
// Pop_UID.
func (s *Snapshot) PopFullName(key cu.PopKey) string {
	p, ok := s.Population(key)
	if !ok {
		return key.String()
	}
	return p.FullName()
}

// PopShortName returns the name of a population.
func (s *Snapshot) PopShortName(key cu.PopKey) string {
	p, ok := s.Population(key)
	if !ok {
		return key.String()
	}
	return p.ShortName()
}

// PopsForCUs returns keys of populations that belong to any of the CUs,
// in lookup order.
func (s *Snapshot) PopsForCUs(cuIDs []string) []cu.PopKey {
	want := make(map[string]struct{}, len(cuIDs))
	for _, id := range cuIDs {
		want[id] = struct{}{}
	}
	var res []cu.PopKey
	for _, p := range s.pops {
		if _, ok := want[p.Key.CUID]; ok {
			res = append(res, p.Key)
		}
	}
	return res
}

// CUIDs returns all CU_IDs in lookup order.
func (s *Snapshot) CUIDs() []string {
	res := make([]string, len(s.cus))
	for i := range s.cus {
		res[i] = s.cus[i].ID
	}
	return res
}

// PopUIDs returns all Pop_UIDs in lookup order.
func (s *Snapshot) PopUIDs() []string {
	res := make([]string, len(s.pops))
	for i := range s.pops {
		res[i] = s.pops[i].UID
	}
	return res
}

func cloneTable(t *table.Table) *table.Table {
	if t == nil {
		return nil
	}
	return t.Clone()
}
