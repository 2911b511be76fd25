// Package attrs left-joins static CU attributes onto wide metric rows and
// coerces attributes with declared orderings to categorical scales.
package attrs

import (
	"slices"
	"strings"

	"github.com/gnames/cudb/pkg/category"
	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/reshape"
	"github.com/gnames/cudb/pkg/table"
)

// NALabel is the category that replaces missing attribute values before
// coercion.
const NALabel = "NA"

// Ordering declares permitted values of an attribute, lowest first.
type Ordering struct {
	Column string   `yaml:"column"`
	Levels []string `yaml:"levels"`
}

// Column is an attribute aligned with wide rows.
type Column struct {
	Name string
	// Raw are joined values, NA where the CU is unknown or the value is
	// missing.
	Raw []string
	// Scale is nil for attributes without a declared ordering.
	Scale *category.Scale
	// Values are set only when Scale is not nil.
	Values []category.Value
}

// Label returns the value of a row as a string.
func (c Column) Label(row int) string {
	if c.Scale == nil {
		return c.Raw[row]
	}
	return c.Scale.Label(c.Values[row])
}

// Joined is a wide metric table with CU attributes.
type Joined struct {
	Wide       *reshape.Wide
	Attributes []Column
	// Drift lists distinct values per attribute that are outside of its
	// declared ordering.
	Drift map[string][]string
	// Unmatched are CU_IDs of wide rows without a lookup record.
	Unmatched []string
}

// Join attaches attribute columns of the CU lookup to every wide row by
// CU_ID. The first lookup row of a CU is used. Rows without a matching CU
// are kept with NA attributes.
func Join(
	w *reshape.Wide,
	lookup *table.Table,
	columns []string,
	orderings []Ordering,
) (*Joined, error) {
	if err := lookup.Require(append([]string{cu.ColCUID}, columns...)...); err != nil {
		return nil, err
	}

	idx := lookup.Index(cu.ColCUID)
	res := &Joined{
		Wide:  w,
		Drift: make(map[string][]string),
	}

	var unmatched []string
	raws := make([][]string, len(columns))
	for j := range columns {
		raws[j] = make([]string, w.Len())
	}
	for i, r := range w.Rows {
		rows, ok := idx[r.CUID]
		if !ok {
			if !slices.Contains(unmatched, r.CUID) {
				unmatched = append(unmatched, r.CUID)
			}
			continue
		}
		for j, c := range columns {
			raws[j][i] = strings.TrimSpace(lookup.Get(rows[0], c))
		}
	}
	res.Unmatched = unmatched

	for j, c := range columns {
		col := Column{Name: c, Raw: raws[j]}
		if o, ok := find(orderings, c); ok {
			var drift []string
			col.Scale, col.Values, drift = Coerce(col.Raw, o)
			if len(drift) > 0 {
				res.Drift[c] = drift
			}
		}
		res.Attributes = append(res.Attributes, col)
	}

	return res, nil
}

// Coerce recodes NA to the "NA" label and converts values to the declared
// levels. Values outside of the levels become NA and are returned as drift
// in first-seen order.
func Coerce(
	raw []string,
	o Ordering,
) (*category.Scale, []category.Value, []string) {
	scale := category.NewScale(o.Column, o.Levels...)
	vals := make([]category.Value, len(raw))
	var drift []string
	for i, v := range raw {
		v = strings.TrimSpace(v)
		if table.IsNA(v) {
			v = NALabel
		}
		vals[i] = scale.Parse(v)
		if vals[i] == category.NA && v != NALabel && !slices.Contains(drift, v) {
			drift = append(drift, v)
		}
	}
	return scale, vals, drift
}

// Attribute returns a joined attribute by name.
func (j *Joined) Attribute(name string) (Column, bool) {
	for _, c := range j.Attributes {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Table flattens wide rows and their attributes into a string table.
func (j *Joined) Table(name string) *table.Table {
	res := j.Wide.Table(name)
	for _, c := range j.Attributes {
		vals := make([]string, res.Len())
		for i := range vals {
			vals[i] = c.Label(i)
		}
		// lengths always match wide rows
		_ = res.SetColumn(c.Name, vals)
	}
	return res
}

func find(orderings []Ordering, col string) (Ordering, bool) {
	for _, o := range orderings {
		if o.Column == col {
			return o, true
		}
	}
	return Ordering{}, false
}
