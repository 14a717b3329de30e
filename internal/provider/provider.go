// Package provider defines the narrow interface boundary between the
// reconciliation engine and the systems that own activity data. Network
// clients, persistence, and file-format parsing all live behind these
// interfaces; the engine only ever sees pulled records and issues single
// write calls.
package provider

import (
	"context"

	"tracksync/internal/model"
)

// Update names the writable fields of one provider activity. ActivityID
// addresses the record in the provider's own ID space; every other field
// is written only when non-empty, so a change sets exactly the field it
// corrects.
type Update struct {
	ActivityID  string
	Name        string
	Notes       string
	Equipment   string
	DurationHMS string
}

// Row is the spreadsheet provider's row schema, produced when an activity
// from another provider is added to the spreadsheet. String fields default
// to empty when the source provider has no value.
type Row struct {
	StartTime    string
	ActivityType string
	LocationName string
	City         string
	State        string
	Temperature  string
	Equipment    string

	// Duration is seconds as reported by the source record, 0 when
	// absent; DurationHMS is its "HH:MM:SS" rendering.
	Duration    int
	DurationHMS string

	Distance float64

	MaxSpeed           string
	AvgHeartRate       string
	MaxHeartRate       string
	Calories           string
	MaxElevation       string
	TotalElevationGain string
	WithNames          string
	AvgCadence         string

	// Cross-references to sibling records of the same correlation group.
	StravaID      string
	GarminID      string
	RideWithGPSID string

	Notes string
}

// Handle is the narrow write interface a live provider exposes to the
// change applier. The boolean result reports a provider-side refusal
// without an error (the write call returned falsy); an error reports a
// transport or provider failure.
type Handle interface {
	// UpdateActivity writes the non-empty fields of u to the activity
	// addressed by u.ActivityID.
	UpdateActivity(ctx context.Context, u Update) (bool, error)

	// SetGear assigns the named gear/equipment to an activity.
	SetGear(ctx context.Context, gear, activityID string) (bool, error)

	// CreateActivity creates a new activity and returns its
	// provider-native ID.
	CreateActivity(ctx context.Context, row Row) (string, error)
}

// Puller is implemented by providers that can return their already-persisted
// records for a "YYYY-MM" period. Fetching from the network and persisting
// happen before the engine runs and are entirely the provider's concern.
type Puller interface {
	PullActivities(ctx context.Context, period string) ([]model.Record, error)
}

// Lookup resolves a provider name to its live handle, or nil when the
// provider is not configured or not enabled.
type Lookup func(model.Provider) Handle
