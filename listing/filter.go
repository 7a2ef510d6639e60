// Package listing implements the in-memory filter/aggregation stage shared by
// the listing endpoints: a pure predicate chain over already-fetched rows,
// summary statistics, and a guard against superseded refreshes.
package listing

import (
	"strings"
	"time"
)

// Predicate reports whether a row passes one filter.
type Predicate[T any] func(T) bool

// Apply narrows rows to those matching every predicate. It is pure and
// stable: input order is preserved, the input slice is never mutated, and
// applying the same predicates twice yields the same result.
func Apply[T any](rows []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		ok := true
		for _, pred := range preds {
			if !pred(row) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, row)
		}
	}
	return out
}

// EqualsID builds an equality filter on a numeric id field. A nil want means
// the filter is unset and every row passes.
func EqualsID[T any](want *uint, get func(T) uint) Predicate[T] {
	return func(row T) bool {
		return want == nil || get(row) == *want
	}
}

// EqualsString builds an equality filter on a string field; empty means unset.
func EqualsString[T any](want string, get func(T) string) Predicate[T] {
	return func(row T) bool {
		return want == "" || get(row) == want
	}
}

// Substring builds a case-insensitive substring filter across one or more
// string fields. The query is trimmed; an empty query passes everything. A
// row passes when any field contains the query.
func Substring[T any](query string, gets ...func(T) string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(row T) bool {
		if q == "" {
			return true
		}
		for _, get := range gets {
			if strings.Contains(strings.ToLower(get(row)), q) {
				return true
			}
		}
		return false
	}
}

// AllTags builds a multi-select category filter. Every selected tag must be
// satisfied (AND semantics): selecting both tags of a mutually exclusive pair
// (e.g. "Jain" and "Non-Jain") therefore matches nothing. That reproduces
// the observed product behavior and is intentionally not widened to
// OR-within-group.
func AllTags[T any](tags []string, match func(row T, tag string) bool) Predicate[T] {
	return func(row T) bool {
		for _, tag := range tags {
			if !match(row, tag) {
				return false
			}
		}
		return true
	}
}

// DateBetween builds an inclusive [from, to] filter on a date field. A nil
// bound skips that side of the check.
func DateBetween[T any](from, to *time.Time, get func(T) time.Time) Predicate[T] {
	return func(row T) bool {
		d := get(row)
		if from != nil && d.Before(*from) {
			return false
		}
		if to != nil && d.After(*to) {
			return false
		}
		return true
	}
}

// Truthy normalizes the boolean-ish values the backend hands back for flag
// columns: true, 1, "1" and "true" all count as set.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t == "1" || strings.EqualFold(t, "true")
	default:
		return false
	}
}
