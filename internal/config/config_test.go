package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tracksync/internal/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.HomeTimezone != "UTC" {
		t.Errorf("HomeTimezone = %q, want UTC", cfg.HomeTimezone)
	}
	for name, pc := range cfg.Providers {
		if pc.Enabled {
			t.Errorf("provider %s enabled by default", name)
		}
	}

	if p := cfg.Provider(model.Spreadsheet).EffectivePriority(); p != 1 {
		t.Errorf("spreadsheet priority = %d, want 1", p)
	}
	if p := cfg.Provider(model.RideWithGPS).EffectivePriority(); p != 2 {
		t.Errorf("ridewithgps priority = %d, want 2", p)
	}
	if p := cfg.Provider(model.Strava).EffectivePriority(); p != 3 {
		t.Errorf("strava priority = %d, want 3", p)
	}

	if cfg.Provider(model.Garmin).SyncEquipmentEnabled() {
		t.Error("garmin equipment sync should default off")
	}
	if cfg.Provider(model.File).SyncNameEnabled() {
		t.Error("file name sync should default off")
	}
}

func TestSyncFlagDefaults(t *testing.T) {
	off := false
	on := true

	tests := []struct {
		name string
		pc   ProviderConfig
		want bool
	}{
		{"unset means on", ProviderConfig{}, true},
		{"explicit true", ProviderConfig{SyncName: &on}, true},
		{"explicit false", ProviderConfig{SyncName: &off}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pc.SyncNameEnabled(); got != tt.want {
				t.Errorf("SyncNameEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectivePriority(t *testing.T) {
	if got := (ProviderConfig{}).EffectivePriority(); got != 999 {
		t.Errorf("unset priority = %d, want 999", got)
	}
	if got := (ProviderConfig{Priority: 5}).EffectivePriority(); got != 5 {
		t.Errorf("priority = %d, want 5", got)
	}
}

func TestPriorityOrder(t *testing.T) {
	cfg := &Config{
		Providers: map[model.Provider]ProviderConfig{
			model.Strava:      {Enabled: true, Priority: 3},
			model.Spreadsheet: {Enabled: true, Priority: 1},
			model.RideWithGPS: {Enabled: true, Priority: 2},
			model.Garmin:      {Enabled: true},
			model.File:        {},
		},
	}

	got := cfg.PriorityOrder()
	want := []model.Provider{model.Spreadsheet, model.RideWithGPS, model.Strava, model.Garmin}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PriorityOrder() = %v, want %v", got, want)
	}
}

func TestUnknownProviderZeroConfig(t *testing.T) {
	cfg := Default()
	pc := cfg.Provider(model.Provider("fitbit"))

	if pc.Enabled {
		t.Error("unknown provider should be disabled")
	}
	if pc.EffectivePriority() != 999 {
		t.Error("unknown provider should get the default priority")
	}
	if !pc.SyncNameEnabled() || !pc.SyncEquipmentEnabled() {
		t.Error("unknown provider sync flags should default on")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := []byte(`home_timezone: America/Chicago
providers:
  strava:
    enabled: true
    priority: 1
  ridewithgps:
    enabled: true
    priority: 2
    sync_equipment: false
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.HomeTimezone != "America/Chicago" {
		t.Errorf("HomeTimezone = %q", cfg.HomeTimezone)
	}
	if !cfg.Provider(model.Strava).Enabled {
		t.Error("strava should be enabled")
	}
	if cfg.Provider(model.RideWithGPS).SyncEquipmentEnabled() {
		t.Error("ridewithgps equipment sync should be off")
	}
	// Unmentioned providers keep their defaults.
	if p := cfg.Provider(model.Spreadsheet).EffectivePriority(); p != 1 {
		t.Errorf("spreadsheet priority = %d, want default 1", p)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.HomeTimezone = "America/New_York"
	pc := cfg.Providers[model.Strava]
	pc.Enabled = true
	cfg.Providers[model.Strava] = pc

	if err := cfg.SaveToPath(path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.HomeTimezone != "America/New_York" {
		t.Errorf("HomeTimezone = %q", loaded.HomeTimezone)
	}
	if !loaded.Provider(model.Strava).Enabled {
		t.Error("strava enabled flag lost in round trip")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("TRACKSYNC_HOME_TIMEZONE", "Europe/Berlin")
	t.Setenv("TRACKSYNC_DEBUG", "yes")
	t.Setenv("TRACKSYNC_FILE_PATH", "/data/activities")

	cfg := Default()
	cfg.applyEnvironment()

	if cfg.HomeTimezone != "Europe/Berlin" {
		t.Errorf("HomeTimezone = %q", cfg.HomeTimezone)
	}
	if !cfg.Debug {
		t.Error("Debug should be on")
	}
	if got := cfg.Provider(model.File).Path; got != "/data/activities" {
		t.Errorf("file path = %q", got)
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "1", "yes", "on", " TRUE "} {
		if !parseBool(s) {
			t.Errorf("parseBool(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"false", "0", "no", "off", "", "maybe"} {
		if parseBool(s) {
			t.Errorf("parseBool(%q) = true, want false", s)
		}
	}
}
