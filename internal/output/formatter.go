package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/networth-planner/internal/domain"
)

var (
	// ErrUnsupportedFormat is returned when no formatter matches a name.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnsupportedView is returned for a record view other than monthly or yearly.
	ErrUnsupportedView = errors.New("unsupported view")
	// ErrNoProjection is returned when a formatter is handed a nil projection.
	ErrNoProjection = errors.New("no projection to format")
)

// View selects which record sequence a tabular formatter renders.
type View string

const (
	ViewMonthly View = "monthly"
	ViewYearly  View = "yearly"
)

// ParseView resolves a user supplied view name. Blank means monthly.
func ParseView(name string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "monthly", "month", "m":
		return ViewMonthly, nil
	case "yearly", "year", "annual", "y":
		return ViewYearly, nil
	}
	return "", fmt.Errorf("%w: %q (use monthly or yearly)", ErrUnsupportedView, name)
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(proj *domain.Projection, view View) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.Projection, View) ([]byte, error)
}

func (ff FormatterFunc) Format(p *domain.Projection, v View) ([]byte, error) { return ff.F(p, v) }
func (ff FormatterFunc) Name() string                                         { return ff.ID }

// nowFunc stamps report file names.
var nowFunc = time.Now

// WriteFormatted runs a formatter and writes output to a timestamped file with
// extension ext inside dir. An empty dir means the working directory.
func WriteFormatted(dir string, f Formatter, proj *domain.Projection, view View, ext string) (string, error) {
	data, err := f.Format(proj, view)
	if err != nil {
		return "", err
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	filename := filepath.Join(dir, fmt.Sprintf("networth_%s_%s.%s", view, nowFunc().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return filename, nil
}

// GenerateReport resolves a formatter by name and writes its output to dir.
func GenerateReport(dir string, proj *domain.Projection, format string, view View) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return WriteFormatted(dir, f, proj, view, Extension(f.Name()))
}

// Extension returns the file extension used for a formatter's output.
func Extension(name string) string {
	n := NormalizeFormatName(name)
	switch {
	case strings.Contains(n, "csv"):
		return "csv"
	case n == "markdown":
		return "md"
	case n == "console", n == "text":
		return "txt"
	}
	return n
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	CSVFormatter{},
	CSVYearlyFormatter{},
	CSVDetailedExporter{},
	JSONFormatter,
	MarkdownFormatter{},
	HTMLFormatter{},
	ConsoleFormatter{},
	TextFormatter{},
	PDFFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"csv-monthly":  "csv",
	"csv-annual":   "csv-yearly",
	"detailed-csv": "csv-detailed",
	"md":           "markdown",
	"html-report":  "html",
	"json-pretty":  "json",
	"terminal":     "console",
	"txt":          "text",
	"plain":        "text",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
