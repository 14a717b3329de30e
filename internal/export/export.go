// Package export serializes computed activity changes so a reconciliation
// pass can be reviewed or applied later, out of band. Changes cross the
// file boundary as plain key/value maps, the same shape used on queues.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"tracksync/internal/logging"
	"tracksync/internal/model"
)

// Format represents the output format for exported changes.
type Format string

const (
	// FormatJSON exports changes as JSON.
	FormatJSON Format = "json"
	// FormatYAML exports changes as YAML.
	FormatYAML Format = "yaml"
	// FormatMarkdown exports changes as a human-readable Markdown report.
	// Markdown is write-only; it cannot be loaded back.
	FormatMarkdown Format = "markdown"
)

// IsValid returns true if the format is recognized.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported format %q (valid: json, yaml, markdown)", s)
	}
	return format, nil
}

// FormatForPath guesses a format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	switch {
	case strings.HasSuffix(path, ".json"):
		return FormatJSON
	case strings.HasSuffix(path, ".md"):
		return FormatMarkdown
	default:
		return FormatYAML
	}
}

// Options configures export behavior.
type Options struct {
	// Format specifies the output format.
	Format Format
	// Pretty enables pretty-printing for JSON/YAML.
	Pretty bool
	// Period is the "YYYY-MM" month the changes were computed for; it is
	// recorded in the Markdown report header.
	Period string
}

// DefaultOptions returns the default export options.
func DefaultOptions() Options {
	return Options{
		Format: FormatYAML,
		Pretty: true,
	}
}

// Exporter writes activity changes in a configured format.
type Exporter struct {
	opts Options
}

// New creates a new Exporter with the given options.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export writes the changes to the writer in the configured format.
func (e *Exporter) Export(changes []model.ActivityChange, w io.Writer) error {
	defer logging.Timer("export")()

	logging.Debug("starting export",
		slog.String("format", string(e.opts.Format)),
		logging.Count(len(changes)),
		logging.Operation("export"),
	)

	var err error
	switch e.opts.Format {
	case FormatJSON:
		err = e.exportJSON(changes, w)
	case FormatYAML:
		err = e.exportYAML(changes, w)
	case FormatMarkdown:
		err = e.exportMarkdown(changes, w)
	default:
		err = fmt.Errorf("unsupported format: %s", e.opts.Format)
	}

	if err != nil {
		logging.Error("export failed",
			slog.String("format", string(e.opts.Format)),
			logging.Err(err),
		)
		return err
	}

	logging.Info("export completed",
		slog.String("format", string(e.opts.Format)),
		logging.Count(len(changes)),
	)
	return nil
}

// toMaps flattens the changes to their wire shape.
func toMaps(changes []model.ActivityChange) []map[string]string {
	maps := make([]map[string]string, len(changes))
	for i, c := range changes {
		maps[i] = c.ToMap()
	}
	return maps
}

// exportJSON writes changes as a JSON array of maps.
func (e *Exporter) exportJSON(changes []model.ActivityChange, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(toMaps(changes))
}

// exportYAML writes changes as a YAML sequence of maps.
func (e *Exporter) exportYAML(changes []model.ActivityChange, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	if e.opts.Pretty {
		encoder.SetIndent(2)
	}
	if err := encoder.Encode(toMaps(changes)); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

// exportMarkdown writes a human-readable change report.
func (e *Exporter) exportMarkdown(changes []model.ActivityChange, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("# Proposed Changes")
	if e.opts.Period != "" {
		sb.WriteString(" for " + e.opts.Period)
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Total: %d change(s)\n\n", len(changes)))

	sb.WriteString("| Change | Provider | Activity | Old | New | Source |\n")
	sb.WriteString("|--------|----------|----------|-----|-----|--------|\n")
	for _, c := range changes {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			c.Type, c.Provider, c.ActivityID,
			markdownCell(c.OldValue), markdownCell(c.NewValue),
			string(c.SourceProvider)))
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}

// markdownCell escapes pipes so free-text values cannot break the table.
func markdownCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// Load reads changes previously written with Export. Markdown reports are
// not loadable.
func Load(r io.Reader, format Format) ([]model.ActivityChange, error) {
	var maps []map[string]string

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&maps); err != nil {
			return nil, fmt.Errorf("failed to decode changes: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&maps); err != nil {
			return nil, fmt.Errorf("failed to decode changes: %w", err)
		}
	default:
		return nil, fmt.Errorf("format %s cannot be loaded", format)
	}

	changes := make([]model.ActivityChange, 0, len(maps))
	for i, m := range maps {
		c, err := model.ChangeFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i, err)
		}
		changes = append(changes, c)
	}
	return changes, nil
}
