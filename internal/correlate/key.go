// Package correlate groups activity records that represent the same
// real-world activity across providers, despite inconsistent identifiers,
// timestamp precision, and GPS-derived distances.
package correlate

import (
	"fmt"
	"math"
	"time"

	"tracksync/internal/model"
)

// referenceZone is the fixed time zone used when deriving the date part of
// a correlation key. A fixed zone (not the user's configured home zone)
// guarantees the same UTC instant always maps to the same key regardless
// of caller configuration.
var referenceZone = loadReferenceZone()

func loadReferenceZone() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}

// Key derives the fuzzy matching key for an activity: the reference-zone
// date plus the distance bucketed to the nearest 0.5 unit, formatted as
// "YYYY-MM-DD_D.D". Records with an unknown timestamp or distance are
// unmatchable and yield "".
//
// The key is deliberately coarse: providers disagree on recorded start
// times and GPS distances by small margins, so anything finer than
// day + half-unit granularity would split real matches.
func Key(timestamp int64, distance float64) string {
	if timestamp == 0 || distance == 0 {
		return ""
	}
	date := time.Unix(timestamp, 0).In(referenceZone).Format("2006-01-02")
	bucket := math.Round(distance*2) / 2
	return fmt.Sprintf("%s_%.1f", date, bucket)
}

// ActivityKey derives the correlation key for a normalized activity.
func ActivityKey(a model.Activity) string {
	return Key(a.Timestamp, a.Distance)
}

// Date renders a unix timestamp as a reference-zone YYYY-MM-DD date, the
// same date that appears in correlation keys. Returns "" for 0.
func Date(timestamp int64) string {
	if timestamp == 0 {
		return ""
	}
	return time.Unix(timestamp, 0).In(referenceZone).Format("2006-01-02")
}
