// Package file implements a read-only provider backed by a local directory
// of activity summary files in TOML format, one activity per file. It
// covers exported data sitting next to the track files themselves; track
// parsing is out of scope here, the sidecars carry only summary fields.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tracksync/internal/correlate"
	"tracksync/internal/logging"
	"tracksync/internal/model"
)

// Provider reads activity summaries from TOML files in a directory.
type Provider struct {
	basePath string
}

// New creates a file provider rooted at basePath.
func New(basePath string) *Provider {
	return &Provider{basePath: basePath}
}

// Name returns the provider identifier.
func (p *Provider) Name() model.Provider {
	return model.File
}

// PullActivities reads every *.toml activity summary under the base path
// and returns those whose start time falls in the "YYYY-MM" period.
// A missing directory is not an error: the provider simply has no records.
func (p *Provider) PullActivities(ctx context.Context, period string) ([]model.Record, error) {
	start, end, err := correlate.PeriodRange(period, nil)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(p.basePath); os.IsNotExist(err) {
		return []model.Record{}, nil
	}

	entries, err := os.ReadDir(p.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity directory: %w", err)
	}

	var records []model.Record
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}

		path := filepath.Join(p.basePath, entry.Name())
		rec, err := readRecord(path)
		if err != nil {
			// One malformed sidecar should not sink the pull.
			logging.Warn("skipping malformed activity file",
				logging.ProviderName(string(model.File)),
				logging.Err(err),
			)
			continue
		}

		if rec.StartTime < start || rec.StartTime > end {
			continue
		}
		if rec.ProviderID == "" {
			// Fall back to the file name as the provider-native ID.
			rec.ProviderID = strings.TrimSuffix(entry.Name(), ".toml")
		}
		records = append(records, rec)
	}
	return records, nil
}

// readRecord decodes a single TOML activity summary.
func readRecord(path string) (model.Record, error) {
	var rec model.Record
	// #nosec G304 - path comes from the configured activity directory
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, err
	}
	if err := toml.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return rec, nil
}
