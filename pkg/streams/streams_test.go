package streams_test

import (
	"testing"

	"github.com/gnames/cudb/pkg/streams"
	"github.com/gnames/cudb/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCode(t *testing.T) {
	tests := []struct {
		code, stripped string
		order          int
	}{
		{"100-200-000000-000000", "100-200", 2},
		{"100-000000", "100", 1},
		{"100-200-300", "100-200-300", 3},
		{"100-000000-300-000000", "100-000000-300", 3},
		{"000000", "", 0},
		{"", "", 0},
	}

	for _, v := range tests {
		assert.Equal(t, v.stripped, streams.StripCode(v.code), v.code)
		assert.Equal(t, v.order, streams.Order(v.code), v.code)
	}
}

func TestReduce(t *testing.T) {
	net := table.New("streams", "Code", "CUs", "Sites", "Name", "Geometry")
	net.Append("100-200-000000", "C2:C1:C9", "C1.7:C9.1", "", "LINESTRING(0 0,1 1)")
	net.Append("100-000000", "C1", "", "Fraser River", "LINESTRING(1 1,2 2)")
	net.Append("300-000000", "C9", "C9.1", "Skeena", "")
	net.Append("100-200-300", "C1:C1", "C1.8:C1.7", "", "")

	res, err := streams.Reduce(net, []string{"C1", "C2"}, []string{"C1.7", "C1.8"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Dropped)
	require.Len(t, res.Segments, 3)

	main := res.Segments[0]
	assert.Equal(t, 1, main.Order)
	assert.Equal(t, "Fraser River", main.Name)
	assert.Equal(t, "C1", main.CUList())
	assert.Equal(t, "", main.PopList())

	trib := res.Segments[1]
	assert.Equal(t, 2, trib.Order)
	assert.Equal(t, "100-200", trib.Name)
	assert.Equal(t, "C1,C2", trib.CUList())
	assert.Equal(t, "C1.7", trib.PopList())
	assert.Equal(t, "LINESTRING(0 0,1 1)", trib.Geometry)

	last := res.Segments[2]
	assert.Equal(t, 3, last.Order)
	assert.Equal(t, []string{"C1"}, last.CUs)
	assert.Equal(t, "C1.7,C1.8", last.PopList())

	tbl := res.Table("streams")
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, "1", tbl.Get(0, "Order"))
	assert.Equal(t, "C1,C2", tbl.Get(1, "CUs"))
}

func TestReduceMissingCode(t *testing.T) {
	_, err := streams.Reduce(table.New("streams", "CUs"), nil, nil)
	assert.ErrorIs(t, err, table.ErrMissingColumn)
}

func TestTranslate(t *testing.T) {
	ids := map[string]string{"101": "C1", "102": "C2"}
	lookup := func(s string) (string, bool) {
		id, ok := ids[s]
		return id, ok
	}

	net := table.New("streams", "Code", "CUs", "Sites")
	net.Append("100-000000", "101:999: 102", "101.7:999.1:bad")
	net.Append("200-000000", "", "")

	res := streams.Translate(net, lookup)
	assert.Equal(t, "C1:C2", res.Get(0, "CUs"))
	assert.Equal(t, "C1.7", res.Get(0, "Sites"))
	assert.Equal(t, "", res.Get(1, "CUs"))
	// input is not modified
	assert.Equal(t, "101:999: 102", net.Get(0, "CUs"))

	noSites := table.New("streams", "Code", "CUs")
	noSites.Append("100-000000", "101")
	res = streams.Translate(noSites, lookup)
	assert.False(t, res.Has("Sites"))
	assert.Equal(t, "C1", res.Get(0, "CUs"))
}
