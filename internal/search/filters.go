package search

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidFilter is returned when a filter value is not one of its axis options.
var ErrInvalidFilter = errors.New("invalid filter value")

// Any is the default value of every filter axis.
const Any = "any"

var (
	// SizeOptions lists the accepted values of the size axis.
	SizeOptions = []string{Any, "large", "medium", "icon"}
	// ColorOptions lists the accepted values of the color axis.
	ColorOptions = []string{Any, "color", "gray", "trans"}
	// TypeOptions lists the accepted values of the type axis.
	TypeOptions = []string{Any, "photo", "clipart", "lineart"}
	// TimeOptions lists the accepted values of the time axis.
	TimeOptions = []string{Any, "day", "week", "month", "year"}
)

// Filters narrows a text search. The zero value is not valid; use DefaultFilters.
type Filters struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Type  string `json:"type"`
	Time  string `json:"time"`
}

// DefaultFilters returns filters with every axis set to "any".
func DefaultFilters() Filters {
	return Filters{Size: Any, Color: Any, Type: Any, Time: Any}
}

// ParseFilters validates the four axes. Blank values mean "any".
func ParseFilters(size, color, kind, period string) (Filters, error) {
	f := Filters{}

	axes := []struct {
		name    string
		value   string
		options []string
		dst     *string
	}{
		{"size", size, SizeOptions, &f.Size},
		{"color", color, ColorOptions, &f.Color},
		{"type", kind, TypeOptions, &f.Type},
		{"time", period, TimeOptions, &f.Time},
	}

	for _, axis := range axes {
		value := strings.ToLower(strings.TrimSpace(axis.value))
		if value == "" {
			value = Any
		}

		if !slices.Contains(axis.options, value) {
			return DefaultFilters(), fmt.Errorf("%w: %s=%q (expected one of %s)",
				ErrInvalidFilter, axis.name, axis.value, strings.Join(axis.options, ", "))
		}

		*axis.dst = value
	}

	return f, nil
}

// Normalize fills blank axes with "any". Entries persisted before filters
// were recorded decode with blank axes.
func (f Filters) Normalize() Filters {
	if f.Size == "" {
		f.Size = Any
	}

	if f.Color == "" {
		f.Color = Any
	}

	if f.Type == "" {
		f.Type = Any
	}

	if f.Time == "" {
		f.Time = Any
	}

	return f
}

// IsDefault reports whether no axis narrows the search.
func (f Filters) IsDefault() bool {
	return f.Normalize() == DefaultFilters()
}

// String lists the non-default axes as key=value pairs, or "any".
func (f Filters) String() string {
	f = f.Normalize()

	var parts []string
	for _, kv := range [][2]string{{"size", f.Size}, {"color", f.Color}, {"type", f.Type}, {"time", f.Time}} {
		if kv[1] != Any {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}

	if len(parts) == 0 {
		return Any
	}

	return strings.Join(parts, " ")
}
