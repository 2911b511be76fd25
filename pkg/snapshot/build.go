package snapshot

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gnames/cudb/pkg/attrs"
	"github.com/gnames/cudb/pkg/avail"
	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/popmatch"
	"github.com/gnames/cudb/pkg/report"
	"github.com/gnames/cudb/pkg/reshape"
	"github.com/gnames/cudb/pkg/streams"
	"github.com/gnames/cudb/pkg/table"
	"github.com/gnames/cudb/pkg/unify"
	"github.com/google/uuid"
)

// ErrMissingInput is returned when a required dataset is not provided.
var ErrMissingInput = errors.New("missing input dataset")

// Key tells how a dataset refers to CUs.
type Key struct {
	// Column of the dataset with legacy CU identifiers. Default is CU_ID.
	Column string
	// LookupColumn of the CU lookup that uses the same scheme as Column.
	// Default is CU_ID.
	LookupColumn string
}

// Inputs are raw datasets and settings of a build. CULookup, PopLookup
// and Metrics are required, other tables can be nil.
type Inputs struct {
	CULookup   *table.Table
	PopLookup  *table.Table
	Metrics    *table.Table
	CUSeries   *table.Table
	PopSeries  *table.Table
	Boundaries *table.Table
	Sites      *table.Table
	Streams    *table.Table

	// Keys are CU key settings per dataset name.
	Keys map[string]Key
	// CanonicalColumn is the CU lookup column with canonical CU_IDs.
	CanonicalColumn string
	// Attributes joined onto metric rows. When empty, the columns of
	// cu.AttributeColumns present in the CU lookup are used.
	Attributes []string
	// Orderings declare permitted levels of attributes.
	Orderings []attrs.Ordering
}

// Build runs the reconciliation pipeline and returns an immutable
// snapshot with the report of recoverable problems. An error means the
// inputs are unusable and no snapshot is created.
func Build(in Inputs) (*Snapshot, *report.Report, error) {
	if err := in.check(); err != nil {
		return nil, nil, err
	}
	rep := report.New()
	res := &Snapshot{
		id:      uuid.NewString(),
		created: time.Now(),
	}

	u, err := unify.Unify(in.plan())
	if err != nil {
		return nil, nil, err
	}

	cuTbl, err := res.buildCUs(u.Lookup, rep)
	if err != nil {
		return nil, nil, err
	}

	popTbl, err := res.buildPopLookup(u.Tables[cu.DatasetPopLookup], rep)
	if err != nil {
		return nil, nil, err
	}

	if err = res.matchSeries(popTbl, in.PopSeries, rep); err != nil {
		return nil, nil, err
	}

	if err = res.buildMetrics(cuTbl, u.Tables[cu.DatasetMetrics], in, rep); err != nil {
		return nil, nil, err
	}

	res.cuSeries = res.dropUnknownCUs(u.Tables[cu.DatasetCUSeries], rep)
	res.boundaries = res.dropUnknownCUs(u.Tables[cu.DatasetBoundaries], rep)

	if err = res.buildSites(u.Tables[cu.DatasetSites], rep); err != nil {
		return nil, nil, err
	}

	if err = res.buildPopulations(popTbl); err != nil {
		return nil, nil, err
	}

	if in.Streams != nil {
		net := in.Streams
		if k, ok := in.Keys[cu.DatasetStreams]; ok && k.LookupColumn != "" {
			tr, err := u.Translator(k.LookupColumn, cu.DatasetStreams)
			if err != nil {
				return nil, nil, err
			}
			net = streams.Translate(net, tr.Lookup)
		}
		red, err := streams.Reduce(net, res.CUIDs(), res.PopUIDs())
		if err != nil {
			return nil, nil, err
		}
		res.streams = red.Segments
		rep.StreamsDropped = red.Dropped
	}

	res.cus = avail.CUs(res.cus, res.metrics.Wide, res.cuSeries)
	res.pops = avail.Populations(res.pops, res.popSeries)

	rep.Collisions = u.Collisions
	res.count(rep)
	return res, rep, nil
}

func (in Inputs) check() error {
	var missing []string
	if in.CULookup == nil {
		missing = append(missing, cu.DatasetCULookup)
	}
	if in.PopLookup == nil {
		missing = append(missing, cu.DatasetPopLookup)
	}
	if in.Metrics == nil {
		missing = append(missing, cu.DatasetMetrics)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}
	return nil
}

func (in Inputs) plan() unify.Plan {
	res := unify.Plan{
		Lookup:          in.CULookup,
		CanonicalColumn: in.CanonicalColumn,
	}
	add := func(name string, t *table.Table) {
		if t == nil {
			return
		}
		k := in.Keys[name]
		res.Datasets = append(res.Datasets, unify.Dataset{
			Name:         name,
			Table:        t,
			KeyColumn:    k.Column,
			LookupColumn: k.LookupColumn,
		})
	}
	add(cu.DatasetPopLookup, in.PopLookup)
	add(cu.DatasetMetrics, in.Metrics)
	add(cu.DatasetCUSeries, in.CUSeries)
	add(cu.DatasetBoundaries, in.Boundaries)
	add(cu.DatasetSites, in.Sites)
	return res
}

// buildCUs drops lookup rows without canonical CU_ID, keeps the first
// record of a repeated CU_ID and creates CU entities.
func (s *Snapshot) buildCUs(
	lookup *table.Table,
	rep *report.Report,
) (*table.Table, error) {
	lookup, dropped := unify.DropNA(lookup, cu.ColCUID)
	rep.AddDropped(cu.DatasetCULookup, dropped)

	var dups []string
	seen := make(map[string]struct{})
	all := lookup
	lookup = all.Filter(func(i int) bool {
		id := all.Get(i, cu.ColCUID)
		if _, ok := seen[id]; ok {
			if !slices.Contains(dups, id) {
				dups = append(dups, id)
			}
			return false
		}
		seen[id] = struct{}{}
		return true
	})
	rep.DuplicateCUs = dups

	s.cuIndex = make(map[string]int, lookup.Len())
	for i := range lookup.Len() {
		c := cu.CU{
			ID:          lookup.Get(i, cu.ColCUID),
			Name:        strings.TrimSpace(lookup.Get(i, cu.ColCUName)),
			Species:     strings.TrimSpace(lookup.Get(i, cu.ColSpecies)),
			Zone:        strings.TrimSpace(lookup.Get(i, cu.ColZone)),
			Area:        strings.TrimSpace(lookup.Get(i, cu.ColArea)),
			RunTiming:   strings.TrimSpace(lookup.Get(i, cu.ColRunTiming)),
			LifeHistory: strings.TrimSpace(lookup.Get(i, cu.ColLifeHistory)),
			AvGen:       strings.TrimSpace(lookup.Get(i, cu.ColAvGen)),
		}
		s.cuIndex[c.ID] = len(s.cus)
		s.cus = append(s.cus, c)
	}
	return lookup, nil
}

// buildPopLookup derives Pop_UID, drops populations without a key or
// with an unknown CU and keeps the first record of a repeated Pop_UID.
func (s *Snapshot) buildPopLookup(
	pops *table.Table,
	rep *report.Report,
) (*table.Table, error) {
	if err := unify.AddPopUID(pops); err != nil {
		return nil, err
	}
	pops, dropped := unify.DropNA(pops, cu.ColPopUID)
	rep.AddDropped(cu.DatasetPopLookup, dropped)

	var dups, orphans []string
	seen := make(map[string]struct{})
	all := pops
	pops = all.Filter(func(i int) bool {
		uid := all.Get(i, cu.ColPopUID)
		if _, ok := s.cuIndex[all.Get(i, cu.ColCUID)]; !ok {
			orphans = append(orphans, uid)
			return false
		}
		if _, ok := seen[uid]; ok {
			if !slices.Contains(dups, uid) {
				dups = append(dups, uid)
			}
			return false
		}
		seen[uid] = struct{}{}
		return true
	})
	rep.DuplicatePops = dups
	rep.OrphanPops = orphans

	s.popNames = make(map[string]string, pops.Len())
	for i := range pops.Len() {
		uid := pops.Get(i, cu.ColPopUID)
		s.popNames[uid] = strings.TrimSpace(pops.Get(i, cu.ColPopName))
	}
	return pops, nil
}

// matchSeries resolves population time series to populations and
// attaches time-series names to the population lookup.
func (s *Snapshot) matchSeries(
	pops *table.Table,
	series *table.Table,
	rep *report.Report,
) error {
	if series == nil {
		s.popSeries = table.New(cu.DatasetPopSeries, cu.ColPopUID, cu.ColYear)
		return popmatch.AttachTSNames(pops, nil)
	}

	l, err := popmatch.NewLookup(pops)
	if err != nil {
		return err
	}
	m, err := popmatch.Default(l).Match(series)
	if err != nil {
		return err
	}
	s.popSeries = m.Series
	rep.UnmatchedSeries = len(m.Unmatched)
	rep.MatchedBy = m.ByStrategy
	rep.DuplicateYears = m.DuplicateYears
	return popmatch.AttachTSNames(pops, m.TSNames)
}

// buildMetrics drops observations of unknown CUs, pivots them and joins
// CU attributes.
func (s *Snapshot) buildMetrics(
	cuTbl *table.Table,
	metrics *table.Table,
	in Inputs,
	rep *report.Report,
) error {
	metrics = s.dropUnknownCUs(metrics, rep)
	w, err := reshape.Reshape(metrics)
	if err != nil {
		return err
	}
	rep.MetricCollisions = w.Collisions
	rep.MetricsSkipped = w.Skipped

	cols := in.Attributes
	if len(cols) == 0 {
		for _, c := range cu.AttributeColumns {
			if cuTbl.Has(c) {
				cols = append(cols, c)
			}
		}
	}

	s.metrics, err = attrs.Join(w, cuTbl, cols, in.Orderings)
	if err != nil {
		return err
	}
	for k, v := range s.metrics.Drift {
		rep.Drift[k] = v
	}
	return nil
}

// dropUnknownCUs removes rows whose CU_ID did not resolve or is not in
// the CU table. A nil table stays nil.
func (s *Snapshot) dropUnknownCUs(
	t *table.Table,
	rep *report.Report,
) *table.Table {
	if t == nil {
		return nil
	}
	res := t.Filter(func(i int) bool {
		_, ok := s.cuIndex[t.Get(i, cu.ColCUID)]
		return ok
	})
	rep.AddDropped(t.Name, t.Len()-res.Len())
	return res
}

// buildSites keys population sites by Pop_UID. Sites of unknown
// populations are dropped. When several sites share a Pop_UID, the first
// site named like the population is kept.
func (s *Snapshot) buildSites(sites *table.Table, rep *report.Report) error {
	if sites == nil {
		return nil
	}
	if err := unify.AddPopUID(sites); err != nil {
		return err
	}
	sites, dropped := unify.DropNA(sites, cu.ColPopUID)
	rep.AddDropped(cu.DatasetSites, dropped)

	known := sites.Filter(func(i int) bool {
		_, ok := s.popNames[sites.Get(i, cu.ColPopUID)]
		return ok
	})
	rep.AddDropped(cu.DatasetSites, sites.Len()-known.Len())

	idx := known.Index(cu.ColPopUID)
	keep := make(map[int]bool, len(idx))
	for uid, rows := range idx {
		if len(rows) == 1 {
			keep[rows[0]] = true
			continue
		}
		name := s.popNames[uid]
		for _, r := range rows {
			if strings.TrimSpace(known.Get(r, cu.ColSiteName)) == name {
				keep[r] = true
				break
			}
		}
	}
	s.sites = known.Filter(func(i int) bool {
		return keep[i]
	})
	rep.SiteDuplicates = known.Len() - s.sites.Len()
	return nil
}

// buildPopulations creates population entities. Missing coordinates are
// taken from the population site.
func (s *Snapshot) buildPopulations(pops *table.Table) error {
	var siteIdx map[string][]int
	if s.sites != nil {
		siteIdx = s.sites.Index(cu.ColPopUID)
	}

	s.popIndex = make(map[cu.PopKey]int, pops.Len())
	for i := range pops.Len() {
		key := cu.NewPopKey(pops.Get(i, cu.ColCUID), pops.Get(i, cu.ColPopID))
		p := cu.Population{
			Key:     key,
			UID:     key.String(),
			Name:    strings.TrimSpace(pops.Get(i, cu.ColPopName)),
			Species: strings.TrimSpace(pops.Get(i, cu.ColSpecies)),
			DataSet: strings.TrimSpace(pops.Get(i, cu.ColDataSet)),
			WSKey:   strings.TrimSpace(pops.Get(i, cu.ColWSKey)),
			Lat:     cu.ParseFloat(pops.Get(i, cu.ColLat)),
			Long:    cu.ParseFloat(pops.Get(i, cu.ColLong)),
		}
		if ts := pops.Get(i, cu.ColTSNames); ts != "" {
			p.TSNames = strings.Split(ts, cu.TSNamesSep)
		}
		if rows, ok := siteIdx[p.UID]; ok && !p.HasCoords() {
			p.Lat = cu.ParseFloat(s.sites.Get(rows[0], cu.ColLat))
			p.Long = cu.ParseFloat(s.sites.Get(rows[0], cu.ColLong))
		}
		s.popIndex[key] = len(s.pops)
		s.pops = append(s.pops, p)
	}
	return nil
}

func (s *Snapshot) count(rep *report.Report) {
	rep.AddCount(TableCUs, len(s.cus))
	rep.AddCount(TablePopulations, len(s.pops))
	rep.AddCount(TableMetrics, s.metrics.Wide.Len())
	rep.AddCount(TableCUSeries, tableLen(s.cuSeries))
	rep.AddCount(TablePopSeries, tableLen(s.popSeries))
	rep.AddCount(TableBoundaries, tableLen(s.boundaries))
	rep.AddCount(TableSites, tableLen(s.sites))
	rep.AddCount(TableStreams, len(s.streams))
}

func tableLen(t *table.Table) int {
	if t == nil {
		return 0
	}
	return t.Len()
}
