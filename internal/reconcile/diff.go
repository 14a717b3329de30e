package reconcile

import (
	"strings"

	"tracksync/internal/config"
	"tracksync/internal/correlate"
	"tracksync/internal/logging"
	"tracksync/internal/model"
)

// noEquipment is the placeholder some providers store when no gear is
// assigned; it is treated the same as an empty equipment value.
const noEquipment = "no equipment"

// ComputeChanges runs one reconciliation pass over the pulled records:
// normalize, group by correlation key, resolve authority per group, and
// emit every corrective change needed to bring the providers into line.
//
// The returned groups map is useful for callers that display the activity
// comparison table and is required later by Apply for AddActivity changes.
// Groups of size 1 have nothing to reconcile against and produce no
// changes. The pass is pure computation: it reads provider state and
// writes nothing. period is the "YYYY-MM" month the records were pulled
// for and is used for logging only.
func ComputeChanges(pulled map[model.Provider][]model.Record, cfg *config.Config, period string) (correlate.Groups, []model.ActivityChange) {
	defer logging.Timer("compute_changes")()

	grouped := correlate.Group(NormalizeAll(pulled))
	priority := cfg.PriorityOrder()

	var changes []model.ActivityChange
	for _, key := range grouped.SortedKeys() {
		group := grouped[key]
		if len(group) < 2 {
			// Single-provider groups: nothing to sync
			continue
		}
		changes = append(changes, diffGroup(group, priority, cfg)...)
	}

	logging.Debug("reconciliation pass computed",
		logging.Operation("compute_changes"),
		logging.Period(period),
		logging.Count(len(changes)),
	)
	return grouped, changes
}

// diffGroup emits the changes for one correlation group of size >= 2.
func diffGroup(group []model.Activity, priority []model.Provider, cfg *config.Config) []model.ActivityChange {
	// When a provider contributes more than one record to a group, the
	// last record wins as that provider's representative.
	byProvider := make(map[model.Provider]model.Activity, len(group))
	for _, a := range group {
		byProvider[a.Provider] = a
	}

	auth, ok := resolveAuthority(byProvider, priority)
	if !ok {
		return nil
	}

	var changes []model.ActivityChange
	for _, p := range providersIn(group) {
		a := byProvider[p]
		pc := cfg.Provider(p)

		if c, ok := nameChange(a, auth, pc); ok {
			changes = append(changes, c)
		}
		if c, ok := equipmentChange(a, auth, pc); ok {
			changes = append(changes, c)
		}
		if p == model.Spreadsheet {
			if c, ok := durationChange(a, byProvider, priority); ok {
				changes = append(changes, c)
			}
		}
	}

	// Enabled providers with no record in this group at all are missing
	// the activity and should have it created from the authoritative
	// source.
	for _, p := range priority {
		if _, present := byProvider[p]; present {
			continue
		}
		if cfg.Provider(p).SyncNameEnabled() && auth.name != "" {
			changes = append(changes, model.ActivityChange{
				Type:           model.AddActivity,
				Provider:       p,
				ActivityID:     auth.record.ID,
				NewValue:       auth.name,
				SourceProvider: auth.provider,
			})
		}
	}
	return changes
}

// providersIn returns the distinct providers of a group in insertion order.
func providersIn(group []model.Activity) []model.Provider {
	var providers []model.Provider
	seen := make(map[model.Provider]bool, len(group))
	for _, a := range group {
		if !seen[a.Provider] {
			seen[a.Provider] = true
			providers = append(providers, a.Provider)
		}
	}
	return providers
}

// nameChange emits an UpdateName when the provider's stored name diverges
// from the authoritative one.
func nameChange(a model.Activity, auth authority, pc config.ProviderConfig) (model.ActivityChange, bool) {
	if !pc.SyncNameEnabled() || a.Provider == auth.provider || auth.name == "" {
		return model.ActivityChange{}, false
	}
	if a.Name == auth.name {
		return model.ActivityChange{}, false
	}
	return model.ActivityChange{
		Type:       model.UpdateName,
		Provider:   a.Provider,
		ActivityID: a.ID,
		OldValue:   a.Name,
		NewValue:   auth.name,
	}, true
}

// equipmentChange emits an UpdateEquipment when the provider's stored
// equipment diverges from the authoritative one, is empty, or is the
// "no equipment" placeholder.
func equipmentChange(a model.Activity, auth authority, pc config.ProviderConfig) (model.ActivityChange, bool) {
	if !pc.SyncEquipmentEnabled() || a.Provider == auth.equipmentProvider || auth.equipment == "" {
		return model.ActivityChange{}, false
	}
	current := strings.ToLower(strings.TrimSpace(a.Equipment))
	wrong := a.Equipment != auth.equipment || current == "" || current == noEquipment
	if !wrong {
		return model.ActivityChange{}, false
	}
	return model.ActivityChange{
		Type:       model.UpdateEquipment,
		Provider:   a.Provider,
		ActivityID: a.ID,
		OldValue:   a.Equipment,
		NewValue:   auth.equipment,
	}, true
}

// durationChange emits the spreadsheet-only UpdateMetadata: the first
// populated duration among the other providers, scanned in priority order
// and rendered as HH:MM:SS, replaces a divergent stored duration string.
func durationChange(sheet model.Activity, byProvider map[model.Provider]model.Activity, priority []model.Provider) (model.ActivityChange, bool) {
	var current string
	if sheet.Source != nil {
		current = sheet.Source.DurationHMS
	}

	seconds := 0
	for _, p := range priority {
		if p == model.Spreadsheet {
			continue
		}
		a, ok := byProvider[p]
		if !ok || a.Source == nil {
			continue
		}
		if s := a.Source.DurationSeconds(); s > 0 {
			seconds = s
			break
		}
	}
	if seconds == 0 {
		return model.ActivityChange{}, false
	}

	expected := model.FormatHMS(seconds)
	if expected == current {
		return model.ActivityChange{}, false
	}
	return model.ActivityChange{
		Type:       model.UpdateMetadata,
		Provider:   model.Spreadsheet,
		ActivityID: sheet.ID,
		OldValue:   current,
		NewValue:   expected,
	}, true
}
