package manifest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported manifest formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatText = "text"
)

// ErrUnsupportedFormat is returned when Options.Format names an unknown format.
var ErrUnsupportedFormat = errors.New("manifest: unsupported format")

// ErrInvalidEntry is wrapped by errors for list entries that are not strings.
var ErrInvalidEntry = errors.New("manifest: entry is not a string")

// Options configures manifest loading.
type Options struct {
	// Format: "yaml", "json", "toml" or "text". Auto-detected from extension if empty.
	Format string

	// Required: if true, a missing file is an error. Default: false (returns no names).
	Required bool
}

// Source reads variable names from a single file.
type Source struct {
	path string
	opts Options
}

// New creates a manifest source for path.
func New(path string, opts Options) *Source {
	return &Source{
		path: path,
		opts: opts,
	}
}

// Name returns a human-readable identifier for this source.
func (s *Source) Name() string {
	return "manifest:" + filepath.Base(s.path)
}

// Load reads and parses the manifest, returning names in file order.
func (s *Source) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if s.opts.Required {
				return nil, fmt.Errorf("required manifest not found: %s: %w", s.path, err)
			}
			return []string{}, nil
		}
		return nil, fmt.Errorf("read manifest %s: %w", s.path, err)
	}

	format := s.opts.Format
	if format == "" {
		format = inferFormat(s.path)
	}

	names, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", s.path, err)
	}
	return names, nil
}

// Parse decodes manifest content in the given format.
// YAML and JSON accept either a top-level list or a document with a "variables" list;
// TOML requires a "variables" array.
func Parse(data []byte, format string) ([]string, error) {
	var raw any
	switch format {
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return []string{}, nil
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
		raw = doc
	case FormatText:
		return parseText(data)
	default:
		return nil, fmt.Errorf("%w: %s (supported: yaml, json, toml, text)", ErrUnsupportedFormat, format)
	}

	return namesFrom(raw)
}

// Merge concatenates name lists in order. Duplicates are kept.
func Merge(lists ...[]string) []string {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	merged := make([]string, 0, n)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	return merged
}

// namesFrom extracts the name list from a decoded document.
func namesFrom(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []any:
		return stringEntries(v)
	case map[string]any:
		list, ok := v["variables"]
		if !ok || list == nil {
			return []string{}, nil
		}
		entries, ok := list.([]any)
		if !ok {
			return nil, fmt.Errorf("\"variables\" must be a list, got %T", list)
		}
		return stringEntries(entries)
	default:
		return nil, fmt.Errorf("expected a list of names or a \"variables\" list, got %T", raw)
	}
}

// stringEntries converts list entries to names, reporting every non-string entry.
func stringEntries(entries []any) ([]string, error) {
	var result *multierror.Error
	names := make([]string, 0, len(entries))

	for i, entry := range entries {
		name, ok := entry.(string)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("%w: index %d: %v (%T)", ErrInvalidEntry, i, entry, entry))
			continue
		}
		names = append(names, name)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return names, nil
}

// parseText reads one name per line, skipping blank lines and # comments.
func parseText(data []byte) ([]string, error) {
	names := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse text: %w", err)
	}
	return names, nil
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}
