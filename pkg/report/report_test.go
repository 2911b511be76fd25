package report_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/gnames/cudb/pkg/cu"
	"github.com/gnames/cudb/pkg/popmatch"
	"github.com/gnames/cudb/pkg/report"
	"github.com/gnames/cudb/pkg/translate"
	"github.com/stretchr/testify/assert"
)

func TestEmpty(t *testing.T) {
	r := report.New()
	r.AddDropped("cu_metrics", 0)
	r.AddCount("cus", 3)
	assert.False(t, r.HasIssues())
	assert.Empty(t, r.Issues())
}

func TestIssues(t *testing.T) {
	r := report.New()
	r.Collisions = append(r.Collisions, translate.Collision{
		Dataset: "cu_metrics", OldColumn: "CU_ID_Alt2", NewColumn: "CU_ID",
		Old: "102", New: []string{"C2", "C3"}, Rows: []int{1, 2},
	})
	r.AddDropped("cu_metrics", 2)
	r.AddDropped("cu_metrics", 1)
	r.DuplicateYears = append(r.DuplicateYears, popmatch.DuplicateYear{
		Key: cu.NewPopKey("C1", "7"), TSName: "Escapement", Year: 2000,
		Rows: []int{0, 3},
	})
	r.Drift["RunTiming"] = []string{"Midsummer"}

	assert.True(t, r.HasIssues())
	assert.Equal(t, 3, r.Dropped["cu_metrics"])

	issues := r.Issues()
	assert.Len(t, issues, 4)
	assert.Contains(t, issues[0], "'102'")
	assert.Contains(t, issues[1], "3 rows dropped")
	assert.Contains(t, issues[2], "duplicate year 2000")
	assert.Contains(t, issues[2], "C1.7")
	assert.Contains(t, issues[3], "Midsummer")
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	r := report.New()
	r.AddCount("cus", 3)
	r.StreamsDropped = 2
	r.Log()

	out := buf.String()
	assert.Contains(t, out, "table=cus")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "segments=2")
}
