package item

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Filter narrows a List result. The zero Filter matches everything.
type Filter struct {
	// Name is a glob pattern (*, ?, [...], {a,b}) matched against item names.
	Name string
}

// NewFilter builds a Filter and rejects malformed name patterns.
func NewFilter(name string) (Filter, error) {
	if name != "" && !doublestar.ValidatePattern(name) {
		return Filter{}, &ValidationError{Field: "name", Message: "invalid glob pattern " + name, Query: true}
	}
	return Filter{Name: name}, nil
}

// Match reports whether it passes the filter.
func (f Filter) Match(it Item) bool {
	if f.Name == "" {
		return true
	}
	ok, err := doublestar.Match(f.Name, it.Name)
	return err == nil && ok
}

// Apply returns the items that pass the filter, preserving order.
func (f Filter) Apply(items []Item) []Item {
	if f.Name == "" {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
