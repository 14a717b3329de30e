package model

import "fmt"

// ChangeType classifies a proposed corrective write operation. The string
// values are the wire labels used when a change crosses a queue or API
// boundary.
type ChangeType string

const (
	// UpdateName replaces a provider's stored activity name with the
	// authoritative one.
	UpdateName ChangeType = "Update Name"

	// UpdateEquipment replaces a provider's stored equipment label.
	UpdateEquipment ChangeType = "Update Equipment"

	// UpdateMetadata writes derived metadata (currently the spreadsheet
	// duration string) back to a provider.
	UpdateMetadata ChangeType = "Update Metadata"

	// AddActivity creates a missing activity on a provider from another
	// provider's record.
	AddActivity ChangeType = "Add Activity"

	// LinkActivity is reserved for cross-referencing records without
	// copying data. It is recognized but has no apply behavior yet.
	LinkActivity ChangeType = "Link Activity"
)

// IsValid returns true if the change type is recognized.
func (c ChangeType) IsValid() bool {
	switch c {
	case UpdateName, UpdateEquipment, UpdateMetadata, AddActivity, LinkActivity:
		return true
	default:
		return false
	}
}

// String returns the human-readable label.
func (c ChangeType) String() string {
	return string(c)
}

// AllChangeTypes returns every recognized change type.
func AllChangeTypes() []ChangeType {
	return []ChangeType{UpdateName, UpdateEquipment, UpdateMetadata, AddActivity, LinkActivity}
}

// ActivityChange is a single proposed corrective write operation against
// one provider's copy of one activity. Values are immutable once computed;
// callers serialize them with ToMap to queue them for later application.
type ActivityChange struct {
	Type       ChangeType
	Provider   Provider
	ActivityID string

	// OldValue and NewValue carry the field transition for update
	// changes; empty when not applicable.
	OldValue string
	NewValue string

	// SourceProvider is populated only for AddActivity and LinkActivity
	// and names the provider whose record is the source of the new or
	// linked entry.
	SourceProvider Provider
}

// String describes the change for logs and interactive prompts.
func (c ActivityChange) String() string {
	switch c.Type {
	case UpdateName:
		return fmt.Sprintf("Update %s name for activity %s from %q to %q",
			c.Provider, c.ActivityID, c.OldValue, c.NewValue)
	case UpdateEquipment:
		return fmt.Sprintf("Update %s equipment for activity %s from %q to %q",
			c.Provider, c.ActivityID, c.OldValue, c.NewValue)
	case UpdateMetadata:
		return fmt.Sprintf("Update %s metadata for activity %s (duration_hms: %q -> %q)",
			c.Provider, c.ActivityID, c.OldValue, c.NewValue)
	case AddActivity:
		return fmt.Sprintf("Add activity %q to %s (from %s activity %s)",
			c.NewValue, c.Provider, c.SourceProvider, c.ActivityID)
	case LinkActivity:
		return fmt.Sprintf("Link %s activity %s with %s activity %s",
			c.Provider, c.ActivityID, c.SourceProvider, c.NewValue)
	}
	return "Unknown change"
}

// Map field names used on the wire.
const (
	fieldChangeType     = "change_type"
	fieldProvider       = "provider"
	fieldActivityID     = "activity_id"
	fieldOldValue       = "old_value"
	fieldNewValue       = "new_value"
	fieldSourceProvider = "source_provider"
)

// ToMap serializes the change to a plain key/value structure suitable for
// crossing a process or queue boundary. Empty optional fields are omitted.
func (c ActivityChange) ToMap() map[string]string {
	m := map[string]string{
		fieldChangeType: string(c.Type),
		fieldProvider:   string(c.Provider),
		fieldActivityID: c.ActivityID,
	}
	if c.OldValue != "" {
		m[fieldOldValue] = c.OldValue
	}
	if c.NewValue != "" {
		m[fieldNewValue] = c.NewValue
	}
	if c.SourceProvider != "" {
		m[fieldSourceProvider] = string(c.SourceProvider)
	}
	return m
}

// ChangeFromMap deserializes a change produced by ToMap. It is the exact
// inverse: ChangeFromMap(c.ToMap()) == c for every change value.
func ChangeFromMap(m map[string]string) (ActivityChange, error) {
	ct := ChangeType(m[fieldChangeType])
	if !ct.IsValid() {
		return ActivityChange{}, fmt.Errorf("unknown change type: %q", m[fieldChangeType])
	}
	return ActivityChange{
		Type:           ct,
		Provider:       Provider(m[fieldProvider]),
		ActivityID:     m[fieldActivityID],
		OldValue:       m[fieldOldValue],
		NewValue:       m[fieldNewValue],
		SourceProvider: Provider(m[fieldSourceProvider]),
	}, nil
}
