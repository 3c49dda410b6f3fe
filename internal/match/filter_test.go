package match

import (
	"testing"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

func req(id uint, city domain.City, start, end string) domain.Request {
	return domain.Request{ID: id, City: city, StartDate: start, EndDate: end}
}

func TestFilter_CityAndDateConjunction(t *testing.T) {
	in := []domain.Request{
		req(1, domain.CityLondon, "2025-06-05", "2025-06-15"),
		req(2, domain.CityParis, "2025-06-05", "2025-06-15"),
		req(3, domain.CityLondon, "2025-07-01", "2025-07-10"),
	}

	got := Filter(in, Criteria{City: domain.CityLondon, TravelDate: "2025-06-10"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only request 1, got %+v", got)
	}
}

func TestFilter_EmptyCriteriaPassesAll(t *testing.T) {
	in := []domain.Request{
		req(1, domain.CityLondon, "2025-06-05", "2025-06-15"),
		req(2, domain.CityParis, "2025-06-05", "2025-06-15"),
	}
	got := Filter(in, Criteria{})
	if len(got) != len(in) {
		t.Fatalf("expected all %d requests, got %d", len(in), len(got))
	}
}

func TestFilter_DateContainmentInclusive(t *testing.T) {
	r := req(1, domain.CityLondon, "2025-06-05", "2025-06-15")
	cases := []struct {
		date string
		want bool
	}{
		{"2025-06-04", false},
		{"2025-06-05", true}, // inclusive lower bound
		{"2025-06-10", true},
		{"2025-06-15", true}, // inclusive upper bound
		{"2025-06-16", false},
	}
	for _, tc := range cases {
		c := Criteria{TravelDate: tc.date}
		if got := c.Matches(r); got != tc.want {
			t.Errorf("Matches(date=%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	in := []domain.Request{
		req(3, domain.CityParis, "2025-06-01", "2025-06-30"),
		req(1, domain.CityParis, "2025-06-01", "2025-06-30"),
		req(2, domain.CityParis, "2025-06-01", "2025-06-30"),
	}
	got := Filter(in, Criteria{City: domain.CityParis})
	for i, want := range []uint{3, 1, 2} {
		if got[i].ID != want {
			t.Fatalf("order not preserved: got %v", got)
		}
	}
}
