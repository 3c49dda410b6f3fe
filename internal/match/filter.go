package match

import "github.com/carryonhq/carryon-backend/internal/domain"

// Criteria narrows a candidate list of requests. Zero values disable the
// corresponding dimension: an empty City passes every destination and an
// empty TravelDate passes every window. Active criteria are conjunctive.
type Criteria struct {
	// City requires an exact destination match when non-empty.
	City domain.City
	// TravelDate is a YYYY-MM-DD probe date; when non-empty a request
	// passes only if its window contains it (start ≤ date ≤ end).
	TravelDate string
}

// Matches reports whether a single request satisfies the criteria.
//
// Date containment uses lexicographic string comparison, which is exact for
// the fixed-width YYYY-MM-DD format used throughout the data model.
func (c Criteria) Matches(r domain.Request) bool {
	if c.City != "" && r.City != c.City {
		return false
	}
	if c.TravelDate != "" {
		if r.StartDate > c.TravelDate || r.EndDate < c.TravelDate {
			return false
		}
	}
	return true
}

// Filter returns the subsequence of requests satisfying the criteria. Input
// order is preserved; ranking is a separate, explicit step.
func Filter(requests []domain.Request, c Criteria) []domain.Request {
	out := make([]domain.Request, 0, len(requests))
	for _, r := range requests {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
