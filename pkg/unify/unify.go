// Package unify rewrites CU identifiers of all datasets into one canonical
// scheme and derives composite population keys.
//
// The CU lookup table is finalized first: its CU_ID column is rewritten
// from the canonical column. Every other dataset is then translated from
// one of the raw lookup columns into the canonical column, so all
// translations share the same "new" side. Unify only substitutes values;
// rows with identifiers that could not be translated keep NA and are
// dropped by the caller.
package unify

import (
	"strings"

	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/table"
	"github.com/gnames/cudb/pkg/translate"
)

// Dataset is a table with CU identifiers in a legacy scheme.
type Dataset struct {
	// Name identifies the dataset in reports.
	Name string
	// Table holds the raw dataset.
	Table *table.Table
	// KeyColumn is the column of Table with legacy CU identifiers.
	// Default is CU_ID.
	KeyColumn string
	// LookupColumn is the column of the raw CU lookup that uses the
	// same scheme as KeyColumn. Default is CU_ID.
	LookupColumn string
}

// Plan describes what has to be unified.
type Plan struct {
	// Lookup is the raw CU lookup table.
	Lookup *table.Table
	// CanonicalColumn is the lookup column with canonical identifiers.
	// Default is CU_ID (the lookup is canonical already).
	CanonicalColumn string
	// Datasets are translated in the given order.
	Datasets []Dataset
}

// Result contains unified copies of the input tables.
type Result struct {
	// Lookup is the CU lookup with canonical CU_ID.
	Lookup *table.Table
	// Tables are unified datasets keyed by their names. Each has a
	// canonical CU_ID column.
	Tables map[string]*table.Table
	// Collisions found during all translations.
	Collisions []translate.Collision
	// Unresolved counts rows per dataset with CU_ID that became NA.
	Unresolved map[string]int

	raw       *table.Table
	canonical string
	trs       map[string]*translate.Translator
}

// Unify executes the plan. Input tables are not modified.
//
// The lookup gets its CU_ID row by row from the canonical column, so
// every lookup row with a canonical identifier survives. Datasets that
// share a lookup column share one translator, and each ambiguous legacy
// identifier is reported once.
func Unify(p Plan) (*Result, error) {
	canonical := p.CanonicalColumn
	if canonical == "" {
		canonical = cu.ColCUID
	}
	if err := p.Lookup.Require(cu.ColCUID, canonical); err != nil {
		return nil, err
	}

	res := &Result{
		Tables:     make(map[string]*table.Table),
		Unresolved: make(map[string]int),
		raw:        p.Lookup,
		canonical:  canonical,
		trs:        make(map[string]*translate.Translator),
	}

	lookup := p.Lookup.Clone()
	ids := p.Lookup.Column(canonical)
	for i, v := range ids {
		ids[i] = strings.TrimSpace(v)
	}
	if err := lookup.SetColumn(cu.ColCUID, ids); err != nil {
		return nil, err
	}
	res.Lookup = lookup
	res.Unresolved[p.Lookup.Name] = countNA(ids)

	for _, d := range p.Datasets {
		tr, err := res.Translator(d.LookupColumn, d.Name)
		if err != nil {
			return nil, err
		}

		t, err := translateDataset(tr, d)
		if err != nil {
			return nil, err
		}
		res.Tables[d.Name] = t
		res.Unresolved[d.Name] = countNA(t.Column(cu.ColCUID))
	}

	return res, nil
}

// Translator returns the translator from a raw lookup column into the
// canonical scheme. Translators are created once per lookup column, their
// collisions are added to Collisions on creation under the name of the
// first dataset that needed them. Empty lookupCol means CU_ID.
func (r *Result) Translator(
	lookupCol, dataset string,
) (*translate.Translator, error) {
	if lookupCol == "" {
		lookupCol = cu.ColCUID
	}
	if tr, ok := r.trs[lookupCol]; ok {
		return tr, nil
	}

	tr, err := translate.New(
		r.raw, lookupCol, r.canonical,
		translate.OptDataset(dataset),
	)
	if err != nil {
		return nil, err
	}
	r.trs[lookupCol] = tr
	r.Collisions = append(r.Collisions, tr.Collisions()...)
	return tr, nil
}

func translateDataset(
	tr *translate.Translator,
	d Dataset,
) (*table.Table, error) {
	keyCol := d.KeyColumn
	if keyCol == "" {
		keyCol = cu.ColCUID
	}
	if err := d.Table.Require(keyCol); err != nil {
		return nil, err
	}

	vals := tr.Translate(d.Table.Column(keyCol))
	res := d.Table.Clone()
	res.Name = d.Name
	if err := res.SetColumn(cu.ColCUID, vals); err != nil {
		return nil, err
	}
	return res, nil
}

// AddPopUID derives the Pop_UID column from canonical CU_ID and Pop_ID.
// Rows with a missing part get NA.
func AddPopUID(t *table.Table) error {
	if err := t.Require(cu.ColCUID, cu.ColPopID); err != nil {
		return err
	}
	uids := make([]string, t.Len())
	for i := range t.Len() {
		key := cu.NewPopKey(t.Get(i, cu.ColCUID), t.Get(i, cu.ColPopID))
		uids[i] = key.String()
	}
	return t.SetColumn(cu.ColPopUID, uids)
}

// DropNA returns a copy of the table without rows where the column is NA,
// and the number of dropped rows.
func DropNA(t *table.Table, col string) (*table.Table, int) {
	res := t.Filter(func(i int) bool {
		return !table.IsNA(t.Get(i, col))
	})
	return res, t.Len() - res.Len()
}

func countNA(vals []string) int {
	var res int
	for _, v := range vals {
		if table.IsNA(v) {
			res++
		}
	}
	return res
}
