package translate_test

import (
	"testing"

	"github.com/gnames/cudb/pkg/table"
	"github.com/gnames/cudb/pkg/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup() *table.Table {
	t := table.New("cu_lookup", "CU_ID", "CU_ID_Alt2")
	t.Append("C1", "101")
	t.Append("C2", "102")
	t.Append("C3", "102") // 102 is ambiguous
	t.Append("C4", "")
	t.Append("C5", "103")
	t.Append("C5", "103") // duplicate pair, not a collision
	return t
}

func TestTranslate(t *testing.T) {
	vals := []string{"103", "999", "101", "", "102", "101"}
	res, colls, err := translate.Column(lookup(), "CU_ID_Alt2", "CU_ID", vals)
	require.NoError(t, err)

	assert.Equal(t, []string{"C5", "", "C1", "", "C2", "C1"}, res)
	assert.Len(t, res, len(vals))

	require.Len(t, colls, 1)
	c := colls[0]
	assert.Equal(t, "102", c.Old)
	assert.Equal(t, []string{"C2", "C3"}, c.New)
	assert.Equal(t, []int{1, 2}, c.Rows)
	assert.Equal(t, "cu_lookup", c.Dataset)
	assert.Contains(t, c.String(), "using 'C2'")
}

func TestDeterminism(t *testing.T) {
	tr, err := translate.New(lookup(), "CU_ID_Alt2", "CU_ID")
	require.NoError(t, err)
	for _, id := range []string{"101", "102", "103"} {
		first, ok := tr.Lookup(id)
		require.True(t, ok)
		second, _ := tr.Lookup(id)
		assert.Equal(t, first, second)
	}
}

func TestIdentity(t *testing.T) {
	vals := []string{"C1", "C5", "C4", "C9"}
	res, colls, err := translate.Column(lookup(), "CU_ID", "CU_ID", vals)
	require.NoError(t, err)
	assert.Empty(t, colls)
	assert.Equal(t, []string{"C1", "C5", "C4", ""}, res)
}

func TestDataset(t *testing.T) {
	tr, err := translate.New(
		lookup(), "CU_ID_Alt2", "CU_ID",
		translate.OptDataset("cu_metrics"),
	)
	require.NoError(t, err)
	require.Len(t, tr.Collisions(), 1)
	assert.Equal(t, "cu_metrics", tr.Collisions()[0].Dataset)
	assert.Equal(t, "cu_lookup", tr.Collisions()[0].Lookup)
}

func TestMissingColumn(t *testing.T) {
	_, err := translate.New(lookup(), "CU_ID_Alt9", "CU_ID")
	assert.ErrorIs(t, err, table.ErrMissingColumn)
}
