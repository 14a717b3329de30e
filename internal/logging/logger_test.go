package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.Info("should be suppressed")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info output should be filtered at warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn output missing")
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf, JSON: true})

	logger.Info("hello", ProviderName("strava"))

	out := buf.String()
	if !strings.Contains(out, `"provider":"strava"`) {
		t.Errorf("JSON output missing provider attribute: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := New(Options{Output: &bytes.Buffer{}})
	ctx := NewContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext() should return the attached logger")
	}
	if got := FromContext(context.Background()); got != nil {
		t.Error("FromContext() should return nil without a logger")
	}
	if got := WithContext(ctx); got != logger {
		t.Error("WithContext() should prefer the context logger")
	}
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want string
	}{
		{"provider", ProviderName("garmin"), KeyProvider, "garmin"},
		{"activity", Activity("a1"), KeyActivity, "a1"},
		{"change", Change("Update Name"), KeyChange, "Update Name"},
		{"period", Period("2025-05"), KeyPeriod, "2025-05"},
		{"operation", Operation("pull"), KeyOperation, "pull"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key || tt.attr.Value.String() != tt.want {
				t.Errorf("attr = %v, want %s=%s", tt.attr, tt.key, tt.want)
			}
		})
	}
}

func TestErrAttribute(t *testing.T) {
	if attr := Err(nil); attr.Key != "" {
		t.Errorf("Err(nil) = %v, want empty attr", attr)
	}
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError {
		t.Errorf("Err() key = %q, want %q", attr.Key, KeyError)
	}
}
