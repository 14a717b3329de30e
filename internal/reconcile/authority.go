package reconcile

import (
	"tracksync/internal/model"
)

// authority is the elected ground truth for one correlation group.
//
// Name and equipment are resolved independently: the provider supplying
// the authoritative name may differ from the one supplying the
// authoritative equipment within the same group. This asymmetry is a
// deliberate compatibility property, preserved as observed.
type authority struct {
	// provider elected the name authority; zero when the group is empty.
	provider model.Provider
	name     string

	// equipmentProvider elected the equipment authority independently;
	// zero when no provider in the group has equipment.
	equipmentProvider model.Provider
	equipment         string

	// record is the name authority's activity, used as the source for
	// AddActivity changes.
	record model.Activity
}

// resolveAuthority elects the authoritative name and equipment for a group
// given the provider priority ordering (most authoritative first).
//
// Name: the first priority provider present in the group with a non-empty
// name wins. If none has a name, the first provider present at all wins
// with its (possibly empty) name. Equipment: the first priority provider
// present with non-empty equipment wins.
//
// The second return is false when no priority provider appears in the
// group at all; such groups are skipped for diffing.
// NameAuthority elects the authoritative name for a correlation group, for
// callers that render comparisons without running a full diff. The boolean
// is false when no priority provider appears in the group.
func NameAuthority(group []model.Activity, priority []model.Provider) (model.Provider, string, bool) {
	byProvider := make(map[model.Provider]model.Activity, len(group))
	for _, a := range group {
		byProvider[a.Provider] = a
	}
	auth, ok := resolveAuthority(byProvider, priority)
	if !ok {
		return "", "", false
	}
	return auth.provider, auth.name, true
}

func resolveAuthority(byProvider map[model.Provider]model.Activity, priority []model.Provider) (authority, bool) {
	var auth authority

	for _, p := range priority {
		a, ok := byProvider[p]
		if ok && a.Name != "" {
			auth.provider = p
			auth.name = a.Name
			auth.record = a
			break
		}
	}
	if auth.provider == "" {
		for _, p := range priority {
			if a, ok := byProvider[p]; ok {
				auth.provider = p
				auth.name = a.Name
				auth.record = a
				break
			}
		}
	}

	for _, p := range priority {
		if a, ok := byProvider[p]; ok && a.Equipment != "" {
			auth.equipmentProvider = p
			auth.equipment = a.Equipment
			break
		}
	}

	if auth.provider == "" {
		return authority{}, false
	}
	return auth, true
}
