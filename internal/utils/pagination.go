// Package utils provides small, generic helpers shared across layers.
// Nothing here knows about requests, trips, or any other domain type.
package utils

import "strconv"

// AtoiDefault parses s as an integer, returning def when s is empty or not
// a number. The HTTP layer uses it to read the page and page_size query
// parameters without treating junk input as an error.
//
// Example:
//
//	page := utils.AtoiDefault(c.Query("page"), 1)       // "" -> 1
//	size := utils.AtoiDefault(c.Query("page_size"), 20) // "abc" -> 20
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
