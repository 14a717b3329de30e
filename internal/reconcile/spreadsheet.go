package reconcile

import (
	"math"

	"tracksync/internal/correlate"
	"tracksync/internal/model"
	"tracksync/internal/provider"
)

// RowFromActivity converts a source activity from any provider into the
// spreadsheet's row schema, used when adding a missing activity to the
// spreadsheet. Sibling records in the source's correlation group supply
// the cloud-provider cross-reference IDs; fields the source record lacks
// stay empty. The source's display name lands in the notes column, the
// inverse of the normalizer's spreadsheet override.
func RowFromActivity(src model.Activity, grouped correlate.Groups) provider.Row {
	row := provider.Row{
		StartTime: correlate.Date(src.Timestamp),
		Equipment: src.Equipment,
		Notes:     src.Name,
	}

	if key := correlate.ActivityKey(src); key != "" {
		for _, sibling := range grouped[key] {
			switch sibling.Provider {
			case model.Garmin:
				row.GarminID = sibling.ID
			case model.Strava:
				row.StravaID = sibling.ID
			case model.RideWithGPS:
				row.RideWithGPSID = sibling.ID
			}
		}
	}

	if src.Distance != 0 {
		row.Distance = math.Round(src.Distance*100) / 100
	}

	if rec := src.Source; rec != nil {
		row.ActivityType = rec.ActivityType
		row.LocationName = rec.LocationName
		row.City = rec.City
		row.State = rec.State
		row.Temperature = rec.Temperature
		row.MaxSpeed = rec.MaxSpeed
		row.AvgHeartRate = rec.AvgHeartRate
		row.MaxHeartRate = rec.MaxHeartRate
		row.Calories = rec.Calories
		row.MaxElevation = rec.MaxElevation
		row.TotalElevationGain = rec.TotalElevationGain
		row.WithNames = rec.WithNames
		row.AvgCadence = rec.AvgCadence

		if rec.Duration > 0 {
			row.Duration = rec.Duration
			row.DurationHMS = model.FormatHMS(rec.Duration)
		}
	}
	return row
}
