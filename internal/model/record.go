package model

// Record is the column set shared by every provider's stored activity.
// Providers that lack a column leave it at its zero value; consumers treat
// zero as "unknown" and degrade silently rather than erroring. Fields are
// addressed statically; there is no reflective attribute lookup anywhere
// in the engine.
type Record struct {
	// ProviderID is the provider-native identifier, used only for
	// addressing write operations back to the owning provider.
	ProviderID string `toml:"provider_id"`

	// StartTime is the activity start as unix seconds. 0 disables
	// correlation for this record.
	StartTime int64 `toml:"start_time"`

	// Distance in the caller's common unit. 0 disables correlation.
	Distance float64 `toml:"distance"`

	Name      string `toml:"name"`
	Notes     string `toml:"notes"`
	Equipment string `toml:"equipment"`

	ActivityType string `toml:"activity_type"`

	// Duration representations. Seconds fields are 0 when the provider
	// does not report them; DurationHMS is the spreadsheet's stored
	// "HH:MM:SS" string.
	MovingTime  int    `toml:"moving_time"`
	ElapsedTime int    `toml:"elapsed_time"`
	Duration    int    `toml:"duration"`
	DurationHMS string `toml:"duration_hms"`

	// Location.
	LocationName string `toml:"location_name"`
	City         string `toml:"city"`
	State        string `toml:"state"`

	// Environment and performance. Kept as strings: providers report
	// these in wildly different shapes and the engine only ever copies
	// them through to the spreadsheet row.
	Temperature        string `toml:"temperature"`
	MaxSpeed           string `toml:"max_speed"`
	AvgHeartRate       string `toml:"avg_heart_rate"`
	MaxHeartRate       string `toml:"max_heart_rate"`
	Calories           string `toml:"calories"`
	MaxElevation       string `toml:"max_elevation"`
	TotalElevationGain string `toml:"total_elevation_gain"`
	WithNames          string `toml:"with_names"`
	AvgCadence         string `toml:"avg_cadence"`
}

// DurationSeconds returns the first populated duration representation in
// the fixed lookup order moving time, elapsed time, duration. Returns 0
// when none is populated.
func (r *Record) DurationSeconds() int {
	for _, v := range []int{r.MovingTime, r.ElapsedTime, r.Duration} {
		if v > 0 {
			return v
		}
	}
	return 0
}
