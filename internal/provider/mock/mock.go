// Package mock provides a scriptable in-memory provider for tests and
// demo runs.
package mock

import (
	"context"
	"strconv"

	"tracksync/internal/model"
	"tracksync/internal/provider"
)

// Provider is an in-memory implementation of provider.Handle and
// provider.Puller. Configure it with the builder methods, then inspect
// the recorded calls after exercising the code under test.
type Provider struct {
	name model.Provider

	records   []model.Record
	pullError error

	// Failure switches. RefuseWrites makes write calls return a falsy
	// result without an error; WriteError makes them fail with it.
	refuseWrites bool
	writeError   error

	// Recorded calls.
	Updates     []provider.Update
	GearCalls   []GearCall
	CreatedRows []provider.Row

	nextID int
}

// GearCall records one SetGear invocation.
type GearCall struct {
	Gear       string
	ActivityID string
}

// New creates a mock provider with the given name.
func New(name model.Provider) *Provider {
	return &Provider{name: name, nextID: 1}
}

// WithRecords configures the records returned by PullActivities.
func (p *Provider) WithRecords(records []model.Record) *Provider {
	p.records = records
	return p
}

// WithPullError configures PullActivities to fail.
func (p *Provider) WithPullError(err error) *Provider {
	p.pullError = err
	return p
}

// RefusingWrites makes every write call return a falsy result.
func (p *Provider) RefusingWrites() *Provider {
	p.refuseWrites = true
	return p
}

// WithWriteError makes every write call fail with err.
func (p *Provider) WithWriteError(err error) *Provider {
	p.writeError = err
	return p
}

// Name returns the provider identifier.
func (p *Provider) Name() model.Provider {
	return p.name
}

// PullActivities implements provider.Puller.
func (p *Provider) PullActivities(_ context.Context, _ string) ([]model.Record, error) {
	if p.pullError != nil {
		return nil, p.pullError
	}
	return p.records, nil
}

// UpdateActivity implements provider.Handle.
func (p *Provider) UpdateActivity(_ context.Context, u provider.Update) (bool, error) {
	if p.writeError != nil {
		return false, p.writeError
	}
	if p.refuseWrites {
		return false, nil
	}
	p.Updates = append(p.Updates, u)
	return true, nil
}

// SetGear implements provider.Handle.
func (p *Provider) SetGear(_ context.Context, gear, activityID string) (bool, error) {
	if p.writeError != nil {
		return false, p.writeError
	}
	if p.refuseWrites {
		return false, nil
	}
	p.GearCalls = append(p.GearCalls, GearCall{Gear: gear, ActivityID: activityID})
	return true, nil
}

// CreateActivity implements provider.Handle.
func (p *Provider) CreateActivity(_ context.Context, row provider.Row) (string, error) {
	if p.writeError != nil {
		return "", p.writeError
	}
	if p.refuseWrites {
		return "", nil
	}
	p.CreatedRows = append(p.CreatedRows, row)
	id := strconv.Itoa(p.nextID)
	p.nextID++
	return id, nil
}
