package retention

import (
	"slices"

	"github.com/bnema/zprune/internal/domain"
)

// noBucket never equals a real bucket key.
const noBucket = -1

// SortNewestFirst orders snapshots by timestamp, newest first.
// Snapshots with equal timestamps keep their relative order.
func SortNewestFirst(snapshots []domain.Snapshot) {
	slices.SortStableFunc(snapshots, func(a, b domain.Snapshot) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}

// Classify tags snapshots with the reasons that keep them.
//
// The slice must be sorted newest first. The newest snapshot is always kept
// as latest. Each tier then walks the list and tags every snapshot whose
// bucket key differs from the previous one, until it has tagged as many
// snapshots as the policy allows for that tier. Reasons are only added, so
// classifying twice gives the same result.
func Classify(snapshots []domain.Snapshot, policy domain.RetentionPolicy) {
	if len(snapshots) == 0 {
		return
	}

	snapshots[0].Reasons.Add(domain.ReasonLatest)

	for _, tier := range domain.Tiers() {
		classifyTier(snapshots, tier, policy.KeepCount(tier))
	}
}

func classifyTier(snapshots []domain.Snapshot, tier domain.Tier, keep int) {
	current := noBucket
	kept := 0

	for i := range snapshots {
		if kept >= keep {
			return
		}

		key := tier.BucketKey(snapshots[i].Timestamp)
		if key == current {
			continue
		}

		current = key
		snapshots[i].Reasons.Add(tier.Reason())
		kept++
	}
}
