package model

import "fmt"

// Provider identifies a fitness data source.
type Provider string

const (
	Strava      Provider = "strava"
	RideWithGPS Provider = "ridewithgps"
	Garmin      Provider = "garmin"
	Spreadsheet Provider = "spreadsheet"
	File        Provider = "file"
	StravaJSON  Provider = "stravajson"
)

// IsValid returns true if the provider is recognized.
func (p Provider) IsValid() bool {
	switch p {
	case Strava, RideWithGPS, Garmin, Spreadsheet, File, StravaJSON:
		return true
	default:
		return false
	}
}

// String returns the provider name.
func (p Provider) String() string {
	return string(p)
}

// AllProviders returns all known providers.
func AllProviders() []Provider {
	return []Provider{Strava, RideWithGPS, Garmin, Spreadsheet, File, StravaJSON}
}

// ParseProvider converts a provider name into a Provider, validating it.
func ParseProvider(name string) (Provider, error) {
	p := Provider(name)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown provider: %q", name)
	}
	return p, nil
}
