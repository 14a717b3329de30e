package model

// Activity is the uniform in-memory view of one provider's activity record,
// built fresh on every reconciliation pass and never persisted.
type Activity struct {
	// Provider names the source of the record.
	Provider Provider

	// ID is the provider-native identifier.
	ID string

	// Timestamp is the activity start as unix seconds; 0 means unknown.
	Timestamp int64

	// Distance in the common unit; 0 means unknown.
	Distance float64

	// Name is the display name. For the spreadsheet provider this is
	// sourced from the notes column.
	Name string

	// Equipment is the free-text equipment label, empty when absent.
	Equipment string

	// Source references the original record for provider-specific
	// fields not captured by the common view.
	Source *Record
}
