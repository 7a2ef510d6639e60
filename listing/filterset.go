package listing

import (
	"strconv"
	"time"
)

// FilterSet is the typed bundle of filters a listing endpoint accepts. IDs
// are numeric, search is free text, tags are the multi-select categories.
// Keeping the types explicit removes the stringly-typed coercion the UI
// controls would otherwise leak into comparisons.
type FilterSet struct {
	DeptID  *uint
	ClassID *uint
	Gender  string
	Status  string
	Search  string
	Tags    []string
	From    *time.Time
	To      *time.Time
}

// ParseID converts a query-string id into a typed filter value. Empty or
// non-numeric input means the filter is unset.
func ParseID(raw string) *uint {
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(n)
	return &v
}

// ParseDate parses a yyyy-mm-dd query value; empty or malformed means unset.
func ParseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
