// Package translate maps identifiers from one ID scheme to another using
// a lookup table.
//
// A lookup table holds several columns with the same entity identified in
// different schemes. Translation from an "old" column to a "new" column is
// an element-wise join: the output has the same length and order as the
// input, and values absent from the lookup become NA.
//
// When one old value maps to several distinct new values the lookup is
// ambiguous. Such collisions are reported and resolved by keeping the
// mapping from the first lookup row.
package translate

import (
	"fmt"
	"strings"

	"github.com/gnames/cudb/pkg/table"
)

// Collision describes an old identifier that maps to more than one new
// identifier.
type Collision struct {
	// Dataset is the name of the dataset being translated.
	Dataset string
	// Lookup is the name of the lookup table.
	Lookup string
	// OldColumn and NewColumn are the translated columns.
	OldColumn string
	NewColumn string
	// Old is the ambiguous identifier.
	Old string
	// New are all distinct candidates in lookup order. New[0] is used.
	New []string
	// Rows are zero-based lookup rows that contain the ambiguous
	// identifier.
	Rows []int
}

// String implements fmt.Stringer.
func (c Collision) String() string {
	return fmt.Sprintf(
		"%s: %s '%s' maps to %s '%s' (lookup rows %v), using '%s'",
		c.Dataset, c.OldColumn, c.Old, c.NewColumn,
		strings.Join(c.New, "', '"), c.Rows, c.New[0],
	)
}

// Translator converts identifiers from the old column scheme to the new one.
type Translator struct {
	dataset    string
	oldCol     string
	newCol     string
	index      map[string]string
	collisions []Collision
}

// Option configures a Translator.
type Option func(*Translator)

// OptDataset sets the name of the dataset that is being translated.
// It is used in collision reports only.
func OptDataset(s string) Option {
	return func(t *Translator) {
		t.dataset = s
	}
}

// New builds a translator from lookup rows whose old and new values are
// both present. It returns an error if the lookup does not have the
// requested columns.
func New(
	lookup *table.Table,
	oldCol, newCol string,
	opts ...Option,
) (*Translator, error) {
	if err := lookup.Require(oldCol, newCol); err != nil {
		return nil, err
	}

	res := &Translator{
		dataset: lookup.Name,
		oldCol:  oldCol,
		newCol:  newCol,
		index:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(res)
	}

	// candidates keeps distinct new values per old value in lookup order.
	type candidates struct {
		news []string
		rows []int
	}
	var order []string
	seen := make(map[string]*candidates)

	for i := range lookup.Len() {
		oldVal := strings.TrimSpace(lookup.Get(i, oldCol))
		newVal := strings.TrimSpace(lookup.Get(i, newCol))
		if table.IsNA(oldVal) || table.IsNA(newVal) {
			continue
		}

		c, ok := seen[oldVal]
		if !ok {
			c = &candidates{}
			seen[oldVal] = c
			order = append(order, oldVal)
		}
		c.rows = append(c.rows, i)

		var dup bool
		for _, v := range c.news {
			if v == newVal {
				dup = true
				break
			}
		}
		if !dup {
			c.news = append(c.news, newVal)
		}
	}

	for _, oldVal := range order {
		c := seen[oldVal]
		res.index[oldVal] = c.news[0]
		if len(c.news) > 1 {
			res.collisions = append(res.collisions, Collision{
				Dataset:   res.dataset,
				Lookup:    lookup.Name,
				OldColumn: oldCol,
				NewColumn: newCol,
				Old:       oldVal,
				New:       c.news,
				Rows:      c.rows,
			})
		}
	}

	return res, nil
}

// Lookup translates one value.
func (t *Translator) Lookup(val string) (string, bool) {
	res, ok := t.index[strings.TrimSpace(val)]
	return res, ok
}

// Translate converts values element-wise. Unknown and missing values
// become NA.
func (t *Translator) Translate(vals []string) []string {
	res := make([]string, len(vals))
	for i, v := range vals {
		if tr, ok := t.Lookup(v); ok {
			res[i] = tr
			continue
		}
		res[i] = table.NA
	}
	return res
}

// Collisions returns old values that map to several new values, in lookup
// order.
func (t *Translator) Collisions() []Collision {
	return t.collisions
}

// Column is a one-shot translation of values from oldCol scheme into
// newCol scheme.
func Column(
	lookup *table.Table,
	oldCol, newCol string,
	vals []string,
	opts ...Option,
) ([]string, []Collision, error) {
	tr, err := New(lookup, oldCol, newCol, opts...)
	if err != nil {
		return nil, nil, err
	}
	return tr.Translate(vals), tr.Collisions(), nil
}
