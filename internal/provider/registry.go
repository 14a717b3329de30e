package provider

import (
	"context"
	"fmt"

	"tracksync/internal/logging"
	"tracksync/internal/model"
)

// Registry holds the live providers for one reconciliation run.
type Registry struct {
	handles map[model.Provider]Handle
	pullers map[model.Provider]Puller
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[model.Provider]Handle),
		pullers: make(map[model.Provider]Puller),
	}
}

// Register adds a writable provider. Providers that also implement Puller
// are registered for pulling as well.
func (r *Registry) Register(name model.Provider, h Handle) {
	r.handles[name] = h
	if p, ok := h.(Puller); ok {
		r.pullers[name] = p
	}
}

// RegisterPuller adds a read-only provider that supplies records but
// accepts no writes.
func (r *Registry) RegisterPuller(name model.Provider, p Puller) {
	r.pullers[name] = p
}

// Get returns the handle for name, or nil when the provider has no live
// handle. The nil return satisfies the Lookup contract.
func (r *Registry) Get(name model.Provider) Handle {
	return r.handles[name]
}

// Lookup returns the registry's handle resolver.
func (r *Registry) Lookup() Lookup {
	return r.Get
}

// Providers returns the names of all registered pullers.
func (r *Registry) Providers() []model.Provider {
	names := make([]model.Provider, 0, len(r.pullers))
	for _, p := range model.AllProviders() {
		if _, ok := r.pullers[p]; ok {
			names = append(names, p)
		}
	}
	return names
}

// Pull pulls one registered provider's records for the period.
func (r *Registry) Pull(ctx context.Context, name model.Provider, period string) ([]model.Record, error) {
	p, ok := r.pullers[name]
	if !ok {
		return nil, fmt.Errorf("no puller registered for provider %q", name)
	}
	return p.PullActivities(ctx, period)
}

// PullAll pulls every registered provider's records for the period. The
// result is best-effort: a provider that fails to pull is logged, recorded
// in the returned error map, and simply absent from the record map. The
// diff computer treats it like a provider with no activity.
func (r *Registry) PullAll(ctx context.Context, period string) (map[model.Provider][]model.Record, map[model.Provider]error) {
	pulled := make(map[model.Provider][]model.Record, len(r.pullers))
	errs := make(map[model.Provider]error)

	for _, name := range r.Providers() {
		records, err := r.pullers[name].PullActivities(ctx, period)
		if err != nil {
			logging.Warn("provider pull failed",
				logging.ProviderName(string(name)),
				logging.Period(period),
				logging.Err(err),
			)
			errs[name] = err
			continue
		}
		logging.Debug("provider pull completed",
			logging.ProviderName(string(name)),
			logging.Period(period),
			logging.Count(len(records)),
		)
		pulled[name] = records
	}
	return pulled, errs
}
