package category_test

import (
	"testing"

	"github.com/gnames/cudb/pkg/category"
	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	s := category.NewScale("Status", "Red", "Amber", "Green", "Red")
	assert.Equal(t, "Status", s.Name())
	assert.Equal(t, []string{"Red", "Amber", "Green"}, s.Levels())

	tests := []struct {
		msg   string
		label string
		want  category.Value
	}{
		{"lowest", "Red", 0},
		{"highest", "Green", 2},
		{"spaces", " Amber ", 1},
		{"unknown", "Blue", category.NA},
		{"case matters", "green", category.NA},
		{"empty", "", category.NA},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, s.Parse(v.label), v.msg)
	}
}

func TestOrder(t *testing.T) {
	s := category.NewScale("Status", "Red", "Amber", "Green")
	green, amber := s.Parse("Green"), s.Parse("Amber")
	assert.True(t, s.Less(amber, green))
	assert.False(t, s.Less(green, amber))
	assert.False(t, s.Less(category.NA, green))
	assert.False(t, s.Less(green, category.NA))
}

func TestCoerceLabel(t *testing.T) {
	s := category.NewScale("Timing", "Early", "Late", "NA")
	vals := s.Coerce([]string{"Late", "Summer", "NA"})
	assert.Equal(t, []category.Value{1, category.NA, 2}, vals)
	assert.Equal(t, "Late", s.Label(vals[0]))
	assert.Equal(t, "", s.Label(vals[1]))
	assert.True(t, s.Contains("NA"))
	assert.False(t, s.Contains("Summer"))
}
