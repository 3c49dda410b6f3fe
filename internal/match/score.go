// Package match implements the request discovery and eligibility engine: a
// small, deterministic, dependency-free set of pure functions that score a
// request's bulk, filter candidate requests by destination and date window,
// rank them under a caller-selected policy, and decide whether a carrier's
// itineraries make them eligible to apply. It is intentionally free of
// logging and persistence concerns; callers pass in rows already fetched
// from storage.
package match

import (
	"strconv"
	"strings"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

// sizeWeight maps an item's size category to its bulk contribution.
// Unrecognized or empty categories contribute nothing.
func sizeWeight(label string) int {
	size, ok := domain.ParseSize(label)
	if !ok {
		return 0
	}
	switch size {
	case domain.SizeSmall:
		return 1
	case domain.SizeMedium:
		return 3
	case domain.SizeLarge:
		return 6
	}
	return 0
}

// SizeScore reduces a request's item list to a single non-negative bulk
// score: small=1, medium=3, large=6, unknown=0, summed over all items. The
// function is pure and order-independent; the empty list scores 0.
func SizeScore(items []domain.Item) int {
	total := 0
	for _, it := range items {
		total += sizeWeight(it.Size)
	}
	return total
}

// ParseReward converts a display-formatted reward string ("10,000") to its
// numeric value for ranking. Thousands separators and surrounding space are
// stripped; empty or non-numeric input coerces to 0 rather than failing.
func ParseReward(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
