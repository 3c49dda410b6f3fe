package match

import (
	"sort"

	"github.com/carryonhq/carryon-backend/internal/domain"
)

// SortPolicy selects the ordering applied to a filtered request list.
type SortPolicy string

const (
	// SortLatest orders newest first, using the auto-increment request ID
	// as a monotone creation surrogate.
	SortLatest SortPolicy = "latest"
	// SortRewardDesc orders by parsed reward, highest first.
	SortRewardDesc SortPolicy = "reward_desc"
	// SortBulkAsc orders by bulk score, lightest first.
	SortBulkAsc SortPolicy = "bulk_asc"
	// SortRewardThenBulk orders by reward descending, breaking ties by
	// bulk score ascending.
	SortRewardThenBulk SortPolicy = "reward_then_bulk"
)

// ParsePolicy resolves a query-string value to a SortPolicy, defaulting to
// SortLatest for empty or unknown input.
func ParsePolicy(s string) SortPolicy {
	switch SortPolicy(s) {
	case SortRewardDesc, SortBulkAsc, SortRewardThenBulk, SortLatest:
		return SortPolicy(s)
	}
	return SortLatest
}

// Rank returns a newly ordered copy of requests under the given policy. The
// input slice is never mutated. Sorting is stable, so requests that compare
// equal keep their filtered (creation) order unless the policy explicitly
// breaks the tie.
func Rank(requests []domain.Request, policy SortPolicy) []domain.Request {
	out := make([]domain.Request, len(requests))
	copy(out, requests)

	switch policy {
	case SortRewardDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return ParseReward(out[i].Reward) > ParseReward(out[j].Reward)
		})
	case SortBulkAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return SizeScore(out[i].Items) < SizeScore(out[j].Items)
		})
	case SortRewardThenBulk:
		sort.SliceStable(out, func(i, j int) bool {
			ri, rj := ParseReward(out[i].Reward), ParseReward(out[j].Reward)
			if ri != rj {
				return ri > rj
			}
			return SizeScore(out[i].Items) < SizeScore(out[j].Items)
		})
	default: // SortLatest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID > out[j].ID
		})
	}
	return out
}
