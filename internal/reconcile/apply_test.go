package reconcile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tracksync/internal/correlate"
	"tracksync/internal/model"
	"tracksync/internal/provider"
	"tracksync/internal/provider/mock"
)

func lookupFor(handles map[model.Provider]provider.Handle) provider.Lookup {
	return func(p model.Provider) provider.Handle {
		return handles[p]
	}
}

func groupsWith(activities ...model.Activity) correlate.Groups {
	return correlate.Group(activities)
}

func TestApplyNameUpdate(t *testing.T) {
	m := mock.New(model.Strava)
	lookup := lookupFor(map[model.Provider]provider.Handle{model.Strava: m})

	change := model.ActivityChange{
		Type:       model.UpdateName,
		Provider:   model.Strava,
		ActivityID: "s1",
		OldValue:   "Ride",
		NewValue:   "Morning Ride",
	}

	ok, msg := Apply(context.Background(), change, lookup, nil)
	if !ok {
		t.Fatalf("Apply() failed: %s", msg)
	}
	if len(m.Updates) != 1 {
		t.Fatalf("recorded %d updates, want 1", len(m.Updates))
	}
	u := m.Updates[0]
	if u.ActivityID != "s1" || u.Name != "Morning Ride" || u.Notes != "" {
		t.Errorf("unexpected update: %+v", u)
	}
}

func TestApplySpreadsheetNameWritesNotes(t *testing.T) {
	m := mock.New(model.Spreadsheet)
	lookup := lookupFor(map[model.Provider]provider.Handle{model.Spreadsheet: m})

	change := model.ActivityChange{
		Type:       model.UpdateName,
		Provider:   model.Spreadsheet,
		ActivityID: "42",
		NewValue:   "Morning Ride",
	}

	ok, msg := Apply(context.Background(), change, lookup, nil)
	if !ok {
		t.Fatalf("Apply() failed: %s", msg)
	}
	u := m.Updates[0]
	if u.Notes != "Morning Ride" || u.Name != "" {
		t.Errorf("spreadsheet name should land in notes: %+v", u)
	}
}

func TestApplyEquipmentUsesGearForCloudProviders(t *testing.T) {
	for _, p := range []model.Provider{model.Strava, model.RideWithGPS} {
		t.Run(string(p), func(t *testing.T) {
			m := mock.New(p)
			lookup := lookupFor(map[model.Provider]provider.Handle{p: m})

			change := model.ActivityChange{
				Type:       model.UpdateEquipment,
				Provider:   p,
				ActivityID: "a1",
				NewValue:   "Trek Domane",
			}

			ok, msg := Apply(context.Background(), change, lookup, nil)
			if !ok {
				t.Fatalf("Apply() failed: %s", msg)
			}
			if len(m.GearCalls) != 1 {
				t.Fatalf("recorded %d gear calls, want 1", len(m.GearCalls))
			}
			gc := m.GearCalls[0]
			if gc.Gear != "Trek Domane" || gc.ActivityID != "a1" {
				t.Errorf("unexpected gear call: %+v", gc)
			}
		})
	}
}

func TestApplyEquipmentNotSupportedForGarmin(t *testing.T) {
	m := mock.New(model.Garmin)
	lookup := lookupFor(map[model.Provider]provider.Handle{model.Garmin: m})

	change := model.ActivityChange{
		Type:       model.UpdateEquipment,
		Provider:   model.Garmin,
		ActivityID: "g1",
		NewValue:   "Trek Domane",
	}

	ok, msg := Apply(context.Background(), change, lookup, nil)
	if ok {
		t.Fatal("Apply() should refuse equipment updates for garmin")
	}
	if !strings.Contains(msg, "not supported") {
		t.Errorf("message = %q, want a not supported message", msg)
	}
}

func TestApplyUnknownProvider(t *testing.T) {
	change := model.ActivityChange{
		Type:       model.UpdateName,
		Provider:   model.Provider("fitbit"),
		ActivityID: "1",
		NewValue:   "Ride",
	}

	ok, msg := Apply(context.Background(), change, lookupFor(nil), nil)
	if ok {
		t.Fatal("Apply() should fail for an unknown provider")
	}
	if !strings.Contains(msg, "not supported") {
		t.Errorf("message = %q, want a not supported message", msg)
	}
}

func TestApplyProviderNotAvailable(t *testing.T) {
	change := model.ActivityChange{
		Type:       model.UpdateName,
		Provider:   model.Strava,
		ActivityID: "s1",
		NewValue:   "Ride",
	}

	ok, msg := Apply(context.Background(), change, lookupFor(nil), nil)
	if ok {
		t.Fatal("Apply() should fail when the provider has no live handle")
	}
	if !strings.Contains(msg, "strava provider not available") {
		t.Errorf("message = %q, want provider not available", msg)
	}
}

func TestApplyMetadataUpdate(t *testing.T) {
	m := mock.New(model.Spreadsheet)
	lookup := lookupFor(map[model.Provider]provider.Handle{model.Spreadsheet: m})

	change := model.ActivityChange{
		Type:       model.UpdateMetadata,
		Provider:   model.Spreadsheet,
		ActivityID: "42",
		NewValue:   "01:01:01",
	}

	ok, msg := Apply(context.Background(), change, lookup, nil)
	if !ok {
		t.Fatalf("Apply() failed: %s", msg)
	}
	if u := m.Updates[0]; u.DurationHMS != "01:01:01" {
		t.Errorf("unexpected update: %+v", u)
	}
}

func TestApplyAddActivity(t *testing.T) {
	m := mock.New(model.Spreadsheet)
	lookup := lookupFor(map[model.Provider]provider.Handle{model.Spreadsheet: m})

	src := model.Activity{
		Provider:  model.Strava,
		ID:        "s1",
		Timestamp: 1746504000,
		Distance:  30.5,
		Name:      "Morning Ride",
	}
	grouped := groupsWith(src)

	change := model.ActivityChange{
		Type:           model.AddActivity,
		Provider:       model.Spreadsheet,
		ActivityID:     "s1",
		NewValue:       "Morning Ride",
		SourceProvider: model.Strava,
	}

	ok, msg := Apply(context.Background(), change, lookup, grouped)
	if !ok {
		t.Fatalf("Apply() failed: %s", msg)
	}
	if !strings.Contains(msg, "Added to spreadsheet with ID 1") {
		t.Errorf("message = %q, want added-with-ID message", msg)
	}
	if len(m.CreatedRows) != 1 {
		t.Fatalf("recorded %d created rows, want 1", len(m.CreatedRows))
	}
	if row := m.CreatedRows[0]; row.Notes != "Morning Ride" || row.StravaID != "s1" {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestApplyAddActivityRequiresGroups(t *testing.T) {
	m := mock.New(model.Spreadsheet)
	lookup := lookupFor(map[model.Provider]provider.Handle{model.Spreadsheet: m})

	change := model.ActivityChange{
		Type:           model.AddActivity,
		Provider:       model.Spreadsheet,
		ActivityID:     "s1",
		SourceProvider: model.Strava,
	}

	ok, msg := Apply(context.Background(), change, lookup, nil)
	if ok {
		t.Fatal("Apply() should fail without grouped activities")
	}
	if !strings.Contains(msg, "grouped activities required") {
		t.Errorf("message = %q, want grouped activities required", msg)
	}
}

func TestApplyAddActivitySourceMissing(t *testing.T) {
	m := mock.New(model.Spreadsheet)
	lookup := lookupFor(map[model.Provider]provider.Handle{model.Spreadsheet: m})

	other := model.Activity{
		Provider: model.Garmin, ID: "g1", Timestamp: 1746504000, Distance: 10,
	}
	grouped := groupsWith(other)

	change := model.ActivityChange{
		Type:           model.AddActivity,
		Provider:       model.Spreadsheet,
		ActivityID:     "s1",
		SourceProvider: model.Strava,
	}

	ok, msg := Apply(context.Background(), change, lookup, grouped)
	if ok {
		t.Fatal("Apply() should fail when the source record is absent")
	}
	if msg != "Source activity not found in grouped data" {
		t.Errorf("message = %q", msg)
	}
}

func TestApplyWriteErrorAndRefusal(t *testing.T) {
	change := model.ActivityChange{
		Type:       model.UpdateName,
		Provider:   model.Strava,
		ActivityID: "s1",
		NewValue:   "Ride",
	}

	t.Run("error", func(t *testing.T) {
		m := mock.New(model.Strava).WithWriteError(errors.New("rate limited"))
		ok, msg := Apply(context.Background(), change,
			lookupFor(map[model.Provider]provider.Handle{model.Strava: m}), nil)
		if ok || !strings.Contains(msg, "rate limited") {
			t.Errorf("Apply() = %v %q, want failure with provider error", ok, msg)
		}
	})

	t.Run("refusal", func(t *testing.T) {
		m := mock.New(model.Strava).RefusingWrites()
		ok, msg := Apply(context.Background(), change,
			lookupFor(map[model.Provider]provider.Handle{model.Strava: m}), nil)
		if ok || !strings.Contains(msg, "failed") {
			t.Errorf("Apply() = %v %q, want failure message", ok, msg)
		}
	})
}

func TestApplyLinkActivityUnsupported(t *testing.T) {
	change := model.ActivityChange{
		Type:           model.LinkActivity,
		Provider:       model.Strava,
		ActivityID:     "s1",
		SourceProvider: model.RideWithGPS,
		NewValue:       "r1",
	}

	ok, msg := Apply(context.Background(), change, lookupFor(nil), nil)
	if ok {
		t.Fatal("Apply() should not support link changes")
	}
	if !strings.Contains(msg, "Unsupported change type") {
		t.Errorf("message = %q", msg)
	}
}

func TestApplyRecoversFromPanic(t *testing.T) {
	panicking := func(model.Provider) provider.Handle {
		panic("lookup exploded")
	}
	change := model.ActivityChange{
		Type:       model.UpdateName,
		Provider:   model.Strava,
		ActivityID: "s1",
		NewValue:   "Ride",
	}

	ok, msg := Apply(context.Background(), change, panicking, nil)
	if ok {
		t.Fatal("Apply() should fail when the lookup panics")
	}
	if !strings.Contains(msg, "lookup exploded") {
		t.Errorf("message = %q, want recovered panic text", msg)
	}
}
