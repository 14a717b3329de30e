package reconcile

import (
	"testing"

	"tracksync/internal/model"
)

func TestRowFromActivity(t *testing.T) {
	rec := &model.Record{
		ProviderID:   "g1",
		StartTime:    1746504000,
		Distance:     30.546996425,
		Name:         "Morning Ride",
		Equipment:    "Trek Domane",
		ActivityType: "cycling",
		City:         "Rochester",
		State:        "NY",
		Duration:     3661,
		AvgHeartRate: "142",
	}
	src := Normalize(model.Garmin, rec)

	siblings := []model.Activity{
		src,
		{Provider: model.Strava, ID: "s1", Timestamp: 1746504000, Distance: 30.55},
		{Provider: model.RideWithGPS, ID: "r1", Timestamp: 1746570520, Distance: 30.5},
	}
	grouped := groupsWith(siblings...)

	row := RowFromActivity(src, grouped)

	if row.StartTime != "2025-05-06" {
		t.Errorf("StartTime = %q, want 2025-05-06", row.StartTime)
	}
	if row.Notes != "Morning Ride" {
		t.Errorf("Notes = %q, want the source display name", row.Notes)
	}
	if row.Equipment != "Trek Domane" {
		t.Errorf("Equipment = %q", row.Equipment)
	}
	if row.Distance != 30.55 {
		t.Errorf("Distance = %v, want 30.55 (rounded to two decimals)", row.Distance)
	}
	if row.GarminID != "g1" || row.StravaID != "s1" || row.RideWithGPSID != "r1" {
		t.Errorf("cross references = garmin %q strava %q rwgps %q",
			row.GarminID, row.StravaID, row.RideWithGPSID)
	}
	if row.Duration != 3661 || row.DurationHMS != "01:01:01" {
		t.Errorf("duration = %d %q, want 3661 01:01:01", row.Duration, row.DurationHMS)
	}
	if row.ActivityType != "cycling" || row.City != "Rochester" || row.AvgHeartRate != "142" {
		t.Errorf("detail fields not copied: %+v", row)
	}
}

func TestRowFromActivitySparseSource(t *testing.T) {
	src := model.Activity{
		Provider:  model.Strava,
		ID:        "s1",
		Timestamp: 1746504000,
		Distance:  10,
		Name:      "Quick Spin",
	}
	row := RowFromActivity(src, groupsWith(src))

	if row.Notes != "Quick Spin" || row.StartTime != "2025-05-06" {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.Duration != 0 || row.DurationHMS != "" {
		t.Errorf("sparse source should leave duration empty: %+v", row)
	}
	if row.GarminID != "" || row.RideWithGPSID != "" {
		t.Errorf("no siblings should mean no cross references: %+v", row)
	}
	if row.StravaID != "s1" {
		t.Errorf("StravaID = %q, want the source's own ID", row.StravaID)
	}
}
