// Package reshape pivots long metric observations into wide rows, one row
// per (CU_ID, DataType, Year).
package reshape

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/cudb/pkg/category"
	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/table"
)

// StatusSuffix is appended to a metric name to name its status column.
const StatusSuffix = ".Status"

// Row is a wide metric row.
type Row struct {
	// Key is "CU_ID.DataType.Year".
	Key      string
	CUID     string
	DataType string
	Year     int
	// Values are indexed like Wide.Metrics. NaN is NA.
	Values []float64
	// Status are indexed like Wide.Metrics.
	Status []category.Value
}

// Collision is an observation that overwrote an earlier one with the
// same (CU_ID, DataType, Year, Metric).
type Collision struct {
	Key    string
	Metric string
	// Rows are zero-based rows of the long table, the last one wins.
	Rows []int
}

// Wide is the pivoted metric table.
type Wide struct {
	// Metrics are distinct metric names in first-seen order.
	Metrics []string
	// Rows are in first-seen order of their keys.
	Rows []Row
	// Collisions lists overwritten observations.
	Collisions []Collision
	// Skipped counts observations without CU_ID, DataType, Year or Metric.
	Skipped int

	index   map[string]int
	metrics map[string]int
}

// RowKey builds the key of a wide row.
func RowKey(cuID, dataType string, year int) string {
	return strings.Join([]string{cuID, dataType, strconv.Itoa(year)}, ".")
}

// StatusColumn returns the name of the status column of a metric.
func StatusColumn(metric string) string {
	return metric + StatusSuffix
}

// Reshape pivots long observations. The table must have CU_ID, DataType,
// Year, Metric and Value columns. Status is optional.
func Reshape(long *table.Table) (*Wide, error) {
	err := long.Require(
		cu.ColCUID, cu.ColDataType, cu.ColYear, cu.ColMetric, cu.ColValue,
	)
	if err != nil {
		return nil, err
	}

	res := &Wide{
		index:   make(map[string]int),
		metrics: make(map[string]int),
	}

	// first pass fixes the metric set, so every row gets full-width slices.
	for i := range long.Len() {
		m := strings.TrimSpace(long.Get(i, cu.ColMetric))
		if m == "" {
			continue
		}
		if _, ok := res.metrics[m]; !ok {
			res.metrics[m] = len(res.Metrics)
			res.Metrics = append(res.Metrics, m)
		}
	}

	written := make(map[string][]int)
	var collisionOrder []string
	for i := range long.Len() {
		cuID := strings.TrimSpace(long.Get(i, cu.ColCUID))
		dt := strings.TrimSpace(long.Get(i, cu.ColDataType))
		m := strings.TrimSpace(long.Get(i, cu.ColMetric))
		year, ok := cu.ParseYear(long.Get(i, cu.ColYear))
		if cuID == "" || dt == "" || m == "" || !ok {
			res.Skipped++
			continue
		}

		key := RowKey(cuID, dt, year)
		idx, ok := res.index[key]
		if !ok {
			idx = len(res.Rows)
			res.index[key] = idx
			res.Rows = append(res.Rows, res.newRow(key, cuID, dt, year))
		}

		cell := key + "\x00" + m
		if prev := written[cell]; len(prev) == 1 {
			collisionOrder = append(collisionOrder, cell)
		}
		written[cell] = append(written[cell], i)

		mi := res.metrics[m]
		res.Rows[idx].Values[mi] = cu.ParseFloat(long.Get(i, cu.ColValue))
		res.Rows[idx].Status[mi] = cu.StatusScale.Parse(long.Get(i, cu.ColStatus))
	}

	for _, cell := range collisionOrder {
		key, m, _ := strings.Cut(cell, "\x00")
		res.Collisions = append(res.Collisions, Collision{
			Key:    key,
			Metric: m,
			Rows:   written[cell],
		})
	}

	return res, nil
}

func (w *Wide) newRow(key, cuID, dt string, year int) Row {
	res := Row{
		Key:      key,
		CUID:     cuID,
		DataType: dt,
		Year:     year,
		Values:   make([]float64, len(w.Metrics)),
		Status:   make([]category.Value, len(w.Metrics)),
	}
	for i := range res.Values {
		res.Values[i] = math.NaN()
		res.Status[i] = category.NA
	}
	return res
}

// Len returns the number of wide rows.
func (w *Wide) Len() int {
	return len(w.Rows)
}

// Row returns a row by its key.
func (w *Wide) Row(key string) (Row, bool) {
	i, ok := w.index[key]
	if !ok {
		return Row{}, false
	}
	return w.Rows[i], true
}

// Value returns a metric value of a row, NaN for NA or unknown metric.
func (w *Wide) Value(row int, metric string) float64 {
	mi, ok := w.metrics[metric]
	if !ok {
		return math.NaN()
	}
	return w.Rows[row].Values[mi]
}

// Status returns a metric status of a row, NA for unknown metric.
func (w *Wide) Status(row int, metric string) category.Value {
	mi, ok := w.metrics[metric]
	if !ok {
		return category.NA
	}
	return w.Rows[row].Status[mi]
}

// HasCU checks if any wide row belongs to the CU.
func (w *Wide) HasCU(cuID string) bool {
	return slices.ContainsFunc(w.Rows, func(r Row) bool {
		return r.CUID == cuID
	})
}

// Columns returns column names of the flattened wide table.
func (w *Wide) Columns() []string {
	res := []string{"Key", cu.ColCUID, cu.ColDataType, cu.ColYear}
	for _, m := range w.Metrics {
		res = append(res, m, StatusColumn(m))
	}
	return res
}

// Table flattens the wide rows into a string table.
func (w *Wide) Table(name string) *table.Table {
	res := table.New(name, w.Columns()...)
	for _, r := range w.Rows {
		vals := []string{r.Key, r.CUID, r.DataType, strconv.Itoa(r.Year)}
		for i := range w.Metrics {
			vals = append(vals,
				FormatFloat(r.Values[i]),
				cu.StatusScale.Label(r.Status[i]),
			)
		}
		res.Append(vals...)
	}
	return res
}

// FormatFloat renders a value for a string table, NaN is NA.
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return table.NA
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
