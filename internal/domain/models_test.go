package domain

import "testing"

func TestParseCity(t *testing.T) {
	cases := []struct {
		in   string
		want City
		ok   bool
	}{
		{"London", CityLondon, true},
		{"런던", CityLondon, true},
		{"Paris", CityParis, true},
		{"파리", CityParis, true},
		{"New York", CityNewYork, true},
		{"뉴욕", CityNewYork, true},
		{"  London  ", CityLondon, true},
		{"Tokyo", "", false},
		{"", "", false},
		{"london", "", false}, // labels are case-sensitive enum values
	}
	for _, tc := range cases {
		got, ok := ParseCity(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseCity(%q) = (%q, %v); want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		want Size
		ok   bool
	}{
		{"small", SizeSmall, true},
		{"소형", SizeSmall, true},
		{"medium", SizeMedium, true},
		{"중형", SizeMedium, true},
		{"large", SizeLarge, true},
		{"대형", SizeLarge, true},
		{"huge", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseSize(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseSize(%q) = (%q, %v); want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCities_StableOrder(t *testing.T) {
	got := Cities()
	want := []City{CityLondon, CityParis, CityNewYork}
	if len(got) != len(want) {
		t.Fatalf("Cities() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Cities()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
