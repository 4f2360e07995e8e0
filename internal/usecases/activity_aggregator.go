package usecases

import (
	"fmt"
	"slices"

	"botdash/internal/entities"
)

// DefaultFeedLimit is how many items the recent-activity feed shows.
const DefaultFeedLimit = 10

// TagActivity maps records of one kind onto the feed's display shape.
func TagActivity[T any](kind entities.ActivityKind, records []T, toItem func(T) entities.ActivityItem) []entities.ActivityItem {
	items := make([]entities.ActivityItem, 0, len(records))
	for _, r := range records {
		it := toItem(r)
		it.Kind = kind
		items = append(items, it)
	}
	return items
}

// MergeActivity concatenates the feeds, sorts newest first and keeps the
// first limit items. Items with equal timestamps keep their concatenation
// order. A limit <= 0 means DefaultFeedLimit. An item without a timestamp
// fails the merge instead of landing at an arbitrary position.
func MergeActivity(limit int, feeds ...[]entities.ActivityItem) ([]entities.ActivityItem, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	n := 0
	for _, f := range feeds {
		n += len(f)
	}
	merged := make([]entities.ActivityItem, 0, n)
	for _, f := range feeds {
		for _, it := range f {
			if it.Timestamp.IsZero() {
				return nil, fmt.Errorf("activity %s %s: %w", it.Kind, it.ID, entities.ErrMissingTimestamp)
			}
			merged = append(merged, it)
		}
	}
	slices.SortStableFunc(merged, func(a, b entities.ActivityItem) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}
