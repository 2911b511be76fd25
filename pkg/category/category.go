// Package category implements ordered categorical scales.
//
// A Scale is a fixed, ordered list of permitted labels. Values are stored
// as positions on the scale, which makes ordering comparisons cheap and
// makes values outside of the scale impossible to represent: they become
// NA.
package category

import "strings"

// Value is a position on a Scale. NA is a missing value.
type Value int

// NA is the missing categorical value.
const NA Value = -1

// Scale is an ordered set of category labels.
type Scale struct {
	name   string
	levels []string
	index  map[string]Value
}

// NewScale creates a scale where the first level is the lowest one.
// Repeated levels keep their first position.
func NewScale(name string, levels ...string) *Scale {
	res := &Scale{name: name, index: make(map[string]Value)}
	for _, l := range levels {
		if _, ok := res.index[l]; ok {
			continue
		}
		res.index[l] = Value(len(res.levels))
		res.levels = append(res.levels, l)
	}
	return res
}

// Name returns the name of the scale.
func (s *Scale) Name() string {
	return s.name
}

// Levels returns a copy of ordered levels.
func (s *Scale) Levels() []string {
	res := make([]string, len(s.levels))
	copy(res, s.levels)
	return res
}

// Contains checks if a label belongs to the scale.
func (s *Scale) Contains(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Parse converts a label to its value. Surrounding spaces are ignored,
// unknown labels return NA.
func (s *Scale) Parse(label string) Value {
	if v, ok := s.index[strings.TrimSpace(label)]; ok {
		return v
	}
	return NA
}

// Label returns the label for a value, or an empty string for NA.
func (s *Scale) Label(v Value) string {
	if v < 0 || int(v) >= len(s.levels) {
		return ""
	}
	return s.levels[v]
}

// Coerce converts labels to values. Labels that are not on the scale
// become NA.
func (s *Scale) Coerce(labels []string) []Value {
	res := make([]Value, len(labels))
	for i, l := range labels {
		res[i] = s.Parse(l)
	}
	return res
}

// Less compares two values. NA is not ordered against anything.
func (s *Scale) Less(a, b Value) bool {
	if a == NA || b == NA {
		return false
	}
	return a < b
}
