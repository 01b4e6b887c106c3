package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown category")

type Category struct {
	// Label is the value sent to the server.
	Label string
	// Alias is the ASCII shorthand accepted on the command line.
	Alias string
}

const DefaultCategory = "신호 및 표지"

// Categories is the fixed set, in display order.
var Categories = []Category{
	{Label: "신호 및 표지", Alias: "signs"},
	{Label: "교차로 통과", Alias: "intersection"},
	{Label: "주차 및 정차", Alias: "parking"},
	{Label: "고속도로", Alias: "highway"},
	{Label: "특수상황", Alias: "special"},
}

// ParseCategory accepts a label or an alias (case-insensitive) and returns
// the label.
func ParseCategory(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if s == c.Label || strings.EqualFold(s, c.Alias) {
			return c.Label, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// IsCategory reports whether label is one of the fixed categories.
func IsCategory(label string) bool {
	for _, c := range Categories {
		if c.Label == label {
			return true
		}
	}
	return false
}
