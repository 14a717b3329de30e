package reconcile

import (
	"context"
	"fmt"

	"tracksync/internal/correlate"
	"tracksync/internal/logging"
	"tracksync/internal/model"
	"tracksync/internal/provider"
)

// writeOps is the per-provider strategy table entry: one typed write
// operation per change type the provider supports. A nil operation means
// the change/provider combination is unsupported. Adding a provider is a
// new table entry, not a new conditional chain.
type writeOps struct {
	updateName      func(ctx context.Context, h provider.Handle, c model.ActivityChange) (bool, error)
	updateEquipment func(ctx context.Context, h provider.Handle, c model.ActivityChange) (bool, error)
	updateMetadata  func(ctx context.Context, h provider.Handle, c model.ActivityChange) (bool, error)
	addActivity     func(ctx context.Context, h provider.Handle, c model.ActivityChange, grouped correlate.Groups) (string, bool, error)
}

func updateNameField(ctx context.Context, h provider.Handle, c model.ActivityChange) (bool, error) {
	return h.UpdateActivity(ctx, provider.Update{ActivityID: c.ActivityID, Name: c.NewValue})
}

func updateNotesField(ctx context.Context, h provider.Handle, c model.ActivityChange) (bool, error) {
	return h.UpdateActivity(ctx, provider.Update{ActivityID: c.ActivityID, Notes: c.NewValue})
}

func setGear(ctx context.Context, h provider.Handle, c model.ActivityChange) (bool, error) {
	return h.SetGear(ctx, c.NewValue, c.ActivityID)
}

func updateEquipmentField(ctx context.Context, h provider.Handle, c model.ActivityChange) (bool, error) {
	return h.UpdateActivity(ctx, provider.Update{ActivityID: c.ActivityID, Equipment: c.NewValue})
}

func updateDurationField(ctx context.Context, h provider.Handle, c model.ActivityChange) (bool, error) {
	return h.UpdateActivity(ctx, provider.Update{ActivityID: c.ActivityID, DurationHMS: c.NewValue})
}

func createSpreadsheetRow(ctx context.Context, h provider.Handle, c model.ActivityChange, grouped correlate.Groups) (string, bool, error) {
	src, ok := grouped.Find(c.SourceProvider, c.ActivityID)
	if !ok {
		return "", false, nil
	}
	id, err := h.CreateActivity(ctx, RowFromActivity(src, grouped))
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// providerOps maps each provider to its supported write operations.
var providerOps = map[model.Provider]writeOps{
	model.RideWithGPS: {
		updateName:      updateNameField,
		updateEquipment: setGear,
	},
	model.Strava: {
		updateName:      updateNameField,
		updateEquipment: setGear,
	},
	model.Garmin: {
		updateName: updateNameField,
	},
	model.Spreadsheet: {
		updateName:      updateNotesField,
		updateEquipment: updateEquipmentField,
		updateMetadata:  updateDurationField,
		addActivity:     createSpreadsheetRow,
	},
}

// Apply applies one accepted change through its owning provider's write
// interface and reports (success, message). It never panics and never
// propagates provider errors: every failure is folded into a false result
// with a descriptive message. grouped is required only for AddActivity,
// where the source record must be located.
func Apply(ctx context.Context, change model.ActivityChange, lookup provider.Lookup, grouped correlate.Groups) (success bool, message string) {
	logging.Debug("applying change",
		logging.Change(string(change.Type)),
		logging.ProviderName(string(change.Provider)),
		logging.Activity(change.ActivityID),
	)

	defer func() {
		if r := recover(); r != nil {
			success = false
			message = fmt.Sprintf("%v", r)
		}
	}()

	ops := providerOps[change.Provider]

	switch change.Type {
	case model.UpdateName:
		if ops.updateName == nil {
			return false, fmt.Sprintf("Name update not supported for provider '%s'", change.Provider)
		}
		h := lookup(change.Provider)
		if h == nil {
			return false, fmt.Sprintf("%s provider not available", change.Provider)
		}
		ok, err := ops.updateName(ctx, h, change)
		if err != nil {
			return false, err.Error()
		}
		if !ok {
			return false, fmt.Sprintf("Name update failed for %s", change.ActivityID)
		}
		return true, fmt.Sprintf("Name updated for %s", change.ActivityID)

	case model.UpdateEquipment:
		if ops.updateEquipment == nil {
			return false, fmt.Sprintf("Equipment update not supported for provider '%s'", change.Provider)
		}
		h := lookup(change.Provider)
		if h == nil {
			return false, fmt.Sprintf("%s provider not available", change.Provider)
		}
		ok, err := ops.updateEquipment(ctx, h, change)
		if err != nil {
			return false, err.Error()
		}
		if !ok {
			return false, fmt.Sprintf("Equipment update failed for %s", change.ActivityID)
		}
		return true, fmt.Sprintf("Equipment updated for %s", change.ActivityID)

	case model.UpdateMetadata:
		if ops.updateMetadata == nil {
			return false, fmt.Sprintf("Metadata update not supported for provider '%s'", change.Provider)
		}
		h := lookup(change.Provider)
		if h == nil {
			return false, fmt.Sprintf("%s provider not available", change.Provider)
		}
		ok, err := ops.updateMetadata(ctx, h, change)
		if err != nil {
			return false, err.Error()
		}
		if !ok {
			return false, fmt.Sprintf("Metadata update failed for %s", change.ActivityID)
		}
		return true, fmt.Sprintf("Metadata updated for %s", change.ActivityID)

	case model.AddActivity:
		if ops.addActivity == nil {
			return false, fmt.Sprintf("Add Activity not supported for provider '%s'", change.Provider)
		}
		h := lookup(change.Provider)
		if h == nil {
			return false, fmt.Sprintf("%s provider not available", change.Provider)
		}
		if grouped == nil {
			return false, "grouped activities required for Add Activity"
		}
		id, ok, err := ops.addActivity(ctx, h, change, grouped)
		if err != nil {
			return false, err.Error()
		}
		if !ok {
			return false, "Source activity not found in grouped data"
		}
		if id == "" {
			return false, fmt.Sprintf("Failed to add to %s", change.Provider)
		}
		return true, fmt.Sprintf("Added to %s with ID %s", change.Provider, id)

	default:
		// LinkActivity is defined but has no apply behavior yet.
		return false, fmt.Sprintf("Unsupported change type: %s", change.Type)
	}
}
