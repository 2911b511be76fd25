package cmd

import (
	"bytes"
	"testing"

	"github.com/gnames/cudb/pkg/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetSummaryCmd_Flags verifies the json flag.
func TestGetSummaryCmd_Flags(t *testing.T) {
	cmd := getSummaryCmd()
	assert.Equal(t, "summary", cmd.Use)

	flag := cmd.Flags().Lookup("json")
	require.NotNil(t, flag)
	assert.Equal(t, "j", flag.Shorthand)
	assert.NotNil(t, cmd.Flags().Lookup("sources"))
}

func TestWriteSummary(t *testing.T) {
	res := []summary.Metric{
		{
			DataType: "Annual",
			Metric:   "RelAbd",
			Count:    2,
			NA:       1,
			Min:      0.3,
			Median:   0.4,
			Mean:     0.4,
			Max:      0.5,
			Status:   map[string]int{"Green": 1, "Red": 1},
		},
	}
	var buf bytes.Buffer
	err := writeSummary(&buf, res)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "DataType")
	assert.Contains(t, out, "RelAbd")
	assert.Contains(t, out, "Red:1 Green:1")
}
