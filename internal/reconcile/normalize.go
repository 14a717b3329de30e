// Package reconcile implements the cross-provider reconciliation engine:
// normalizing provider records into a uniform view, resolving the
// authoritative value per field by provider priority, computing the
// corrective change list, and applying individually accepted changes.
//
// The algorithm lives here exactly once; the CLI and any API caller are
// thin wrappers around ComputeChanges and Apply.
package reconcile

import (
	"sort"

	"tracksync/internal/model"
)

// Normalize converts one provider record into the uniform activity view.
// Missing fields degrade silently to zero values; Normalize never fails.
//
// The spreadsheet provider keeps its display name in the notes column, so
// its normalized name is sourced from there. This is a provider-specific
// override, not a general rule.
func Normalize(p model.Provider, rec *model.Record) model.Activity {
	a := model.Activity{
		Provider: p,
		Source:   rec,
	}
	if rec == nil {
		return a
	}

	a.ID = rec.ProviderID
	a.Timestamp = rec.StartTime
	a.Distance = rec.Distance
	a.Equipment = rec.Equipment

	if p == model.Spreadsheet {
		a.Name = rec.Notes
	} else {
		a.Name = rec.Name
	}
	return a
}

// NormalizeAll flattens the per-provider record map into normalized
// activities. Known providers come first in their canonical order so that
// per-group insertion order is stable across runs; any unrecognized
// provider keys follow in lexical order.
func NormalizeAll(pulled map[model.Provider][]model.Record) []model.Activity {
	var activities []model.Activity
	seen := make(map[model.Provider]bool, len(pulled))

	appendProvider := func(p model.Provider) {
		records, ok := pulled[p]
		if !ok || seen[p] {
			return
		}
		seen[p] = true
		for i := range records {
			activities = append(activities, Normalize(p, &records[i]))
		}
	}

	for _, p := range model.AllProviders() {
		appendProvider(p)
	}

	var extra []model.Provider
	for p := range pulled {
		if !seen[p] {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, p := range extra {
		appendProvider(p)
	}
	return activities
}
