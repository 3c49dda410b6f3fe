package match

import (
	"testing"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

func TestSizeScore(t *testing.T) {
	cases := []struct {
		name  string
		items []domain.Item
		want  int
	}{
		{"empty list", nil, 0},
		{"single small", []domain.Item{{Size: "small"}}, 1},
		{"single medium", []domain.Item{{Size: "medium"}}, 3},
		{"single large", []domain.Item{{Size: "large"}}, 6},
		{"korean labels", []domain.Item{{Size: "소형"}, {Size: "중형"}, {Size: "대형"}}, 10},
		{"unknown contributes zero", []domain.Item{{Size: "gigantic"}, {Size: "small"}}, 1},
		{"empty size contributes zero", []domain.Item{{Size: ""}}, 0},
		{"mixed", []domain.Item{{Size: "large"}, {Size: "small"}, {Size: "small"}}, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SizeScore(tc.items); got != tc.want {
				t.Fatalf("SizeScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSizeScore_OrderIndependent(t *testing.T) {
	a := []domain.Item{{Size: "small"}, {Size: "large"}, {Size: "medium"}, {Size: "junk"}}
	b := []domain.Item{{Size: "junk"}, {Size: "medium"}, {Size: "large"}, {Size: "small"}}
	if SizeScore(a) != SizeScore(b) {
		t.Fatalf("SizeScore not commutative: %d vs %d", SizeScore(a), SizeScore(b))
	}
}

func TestParseReward(t *testing.T) {
	cases := map[string]int64{
		"10000":    10000,
		"10,000":   10000,
		"1,000,000": 1000000,
		" 5,500 ":  5500,
		"":         0,
		"abc":      0,
		"10k":      0,
		"0":        0,
	}
	for in, want := range cases {
		if got := ParseReward(in); got != want {
			t.Errorf("ParseReward(%q) = %d, want %d", in, got, want)
		}
	}
}
