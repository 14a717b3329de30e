package correlate

import (
	"sort"

	"tracksync/internal/model"
)

// Groups maps a correlation key to the activities sharing it, one group per
// physical activity. Per-key insertion order is preserved. A group of size
// 1 carries nothing to reconcile but is still returned for display.
type Groups map[string][]model.Activity

// Group buckets activities by correlation key. Activities whose key is ""
// (unknown timestamp or distance) cannot be correlated and are dropped.
func Group(activities []model.Activity) Groups {
	grouped := make(Groups)
	for _, a := range activities {
		key := ActivityKey(a)
		if key == "" {
			continue
		}
		grouped[key] = append(grouped[key], a)
	}
	return grouped
}

// SortedKeys returns the correlation keys in lexical order, which for
// "YYYY-MM-DD_distance" keys is also chronological order within a month.
func (g Groups) SortedKeys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Find locates a record by source provider and provider-native ID across
// all groups. Returns the zero Activity and false when absent.
func (g Groups) Find(provider model.Provider, activityID string) (model.Activity, bool) {
	for _, group := range g {
		for _, a := range group {
			if a.Provider == provider && a.ID == activityID {
				return a, true
			}
		}
	}
	return model.Activity{}, false
}
