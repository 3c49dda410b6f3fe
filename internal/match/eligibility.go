package match

import "github.com/carryonhq/carryon-backend/internal/domain"

// TripMatches reports whether a single itinerary satisfies a request: the
// trip must land in the request's destination city on a date inside the
// request's delivery window (inclusive on both ends, lexicographic
// comparison on YYYY-MM-DD strings).
func TripMatches(trip domain.CarrierTrip, r domain.Request) bool {
	if trip.Destination != r.City {
		return false
	}
	return r.StartDate <= trip.DepartureDate && trip.DepartureDate <= r.EndDate
}

// Eligible reports whether a carrier with the given registered itineraries
// may apply to the request. It is an existence test: one matching trip is
// enough, and a carrier with no trips is never eligible.
func Eligible(trips []domain.CarrierTrip, r domain.Request) bool {
	for _, t := range trips {
		if TripMatches(t, r) {
			return true
		}
	}
	return false
}
