package table_test

import (
	"testing"

	"github.com/gnames/cudb/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *table.Table {
	t := table.New("sample", "CU_ID", "Name")
	t.Append("C1", "Early Stuart")
	t.Append("C2")
	t.Append("C1", "Stuart dup", "ignored")
	return t
}

func TestAppend(t *testing.T) {
	tbl := sample()
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, "", tbl.Get(1, "Name"))
	assert.Equal(t, "Stuart dup", tbl.Get(2, "Name"))
	assert.Equal(t, "", tbl.Get(0, "Unknown"))
	assert.Len(t, tbl.Row(2), 2)
}

func TestRequire(t *testing.T) {
	tbl := sample()
	require.NoError(t, tbl.Require("CU_ID", "Name"))

	err := tbl.Require("CU_ID", "Species", "Zone")
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrMissingColumn)
	assert.Contains(t, err.Error(), "Species, Zone")
}

func TestColumns(t *testing.T) {
	tbl := sample()

	err := tbl.SetColumn("Species", []string{"Sockeye"})
	assert.Error(t, err)

	err = tbl.SetColumn("Species", []string{"Sockeye", "", "Coho"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CU_ID", "Name", "Species"}, tbl.Columns())
	assert.Equal(t, []string{"Sockeye", "", "Coho"}, tbl.Column("Species"))
	assert.Nil(t, tbl.Column("Zone"))

	tbl.Set(1, "Zone", "FRASER")
	assert.Equal(t, []string{"", "FRASER", ""}, tbl.Column("Zone"))
}

func TestFilterClone(t *testing.T) {
	tbl := sample()
	clone := tbl.Clone()
	clone.Set(0, "Name", "changed")
	assert.Equal(t, "Early Stuart", tbl.Get(0, "Name"))

	res := tbl.Filter(func(i int) bool {
		return tbl.Get(i, "CU_ID") == "C1"
	})
	assert.Equal(t, 2, res.Len())
	assert.Equal(t, "Stuart dup", res.Get(1, "Name"))
	assert.Equal(t, "sample", res.Name)
}

func TestIndexDistinct(t *testing.T) {
	tbl := sample()
	tbl.Append("", "no id")
	idx := tbl.Index("CU_ID")
	assert.Equal(t, []int{0, 2}, idx["C1"])
	assert.Equal(t, []int{1}, idx["C2"])
	assert.Len(t, idx, 2)

	assert.Equal(t, []string{"C1", "C2"}, tbl.Distinct("CU_ID"))
}

func TestRecordAppendMap(t *testing.T) {
	tbl := table.New("m", "A", "B")
	tbl.AppendMap(map[string]string{"B": "2", "C": "3"})
	assert.Equal(t, map[string]string{"A": "", "B": "2"}, tbl.Record(0))
	assert.True(t, table.IsNA(tbl.Get(0, "A")))
	assert.True(t, table.IsNA("  "))
}
