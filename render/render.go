package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Azhovan/hydrate"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

// Supported output formats.
const (
	Properties Format = "properties"
	JSON       Format = "json"
	YAML       Format = "yaml"
	TOML       Format = "toml"
)

// ErrUnsupportedFormat is returned for an unknown Format.
var ErrUnsupportedFormat = errors.New("render: unsupported format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{Properties, JSON, YAML, TOML}
}

// ParseFormat converts a format name, case-insensitively. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "properties":
		return Properties, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Option configures rendering using the functional options pattern.
type Option func(*config)

type config struct {
	withSources bool   // Annotate each key with its variable
	indent      string // Indentation for JSON output (default: "  ")
}

// WithSources annotates each key with the variable it was read from and whether it was unset.
// Only formats with comments (properties, YAML) carry the annotation.
func WithSources() Option {
	return func(cfg *config) {
		cfg.withSources = true
	}
}

// WithIndent sets the indentation for JSON output. An empty string produces compact JSON.
func WithIndent(indent string) Option {
	return func(cfg *config) {
		cfg.indent = indent
	}
}

// Write encodes params to w in the given format, in key order.
func Write(w io.Writer, params *hydrate.Params, format Format, opts ...Option) error {
	if params == nil {
		return fmt.Errorf("params is nil")
	}

	cfg := config{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case Properties:
		err = writeProperties(&buf, params, cfg)
	case JSON:
		err = writeJSON(&buf, params, cfg)
	case YAML:
		err = writeYAML(&buf, params, cfg)
	case TOML:
		err = writeTOML(&buf, params)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// writeProperties outputs key=value lines in Java properties syntax.
func writeProperties(buf *bytes.Buffer, params *hydrate.Params, cfg config) error {
	for _, e := range params.Entries() {
		if cfg.withSources {
			fmt.Fprintf(buf, "# %s\n", sourceNote(e))
		}
		buf.WriteString(escapeProperty(e.Key, true))
		buf.WriteByte('=')
		buf.WriteString(escapeProperty(e.Value, false))
		buf.WriteByte('\n')
	}
	return nil
}

// writeJSON outputs a flat object with keys in insertion order.
func writeJSON(buf *bytes.Buffer, params *hydrate.Params, cfg config) error {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, e := range params.Entries() {
		if i > 0 {
			compact.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return fmt.Errorf("json marshal error: %w", err)
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return fmt.Errorf("json marshal error: %w", err)
		}
		compact.Write(k)
		compact.WriteByte(':')
		compact.Write(v)
	}
	compact.WriteByte('}')

	if cfg.indent == "" {
		buf.Write(compact.Bytes())
	} else if err := json.Indent(buf, compact.Bytes(), "", cfg.indent); err != nil {
		return fmt.Errorf("json indent error: %w", err)
	}
	buf.WriteByte('\n')
	return nil
}

// writeYAML outputs a flat mapping built as a node so key order is kept.
func writeYAML(buf *bytes.Buffer, params *hydrate.Params, cfg config) error {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range params.Entries() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}
		if cfg.withSources {
			key.HeadComment = sourceNote(e)
		}
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value}
		doc.Content = append(doc.Content, key, value)
	}

	if len(doc.Content) == 0 {
		buf.WriteString("{}\n")
		return nil
	}

	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml marshal error: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml marshal error: %w", err)
	}
	return nil
}

// writeTOML outputs one top-level quoted key per entry.
func writeTOML(buf *bytes.Buffer, params *hydrate.Params) error {
	for _, e := range params.Entries() {
		line, err := toml.Marshal(map[string]string{e.Key: e.Value})
		if err != nil {
			return fmt.Errorf("toml marshal error: %w", err)
		}
		buf.Write(line)
	}
	return nil
}

// sourceNote describes where an entry's value came from.
func sourceNote(e hydrate.Entry) string {
	if !e.Set {
		return "from " + e.Name + " (unset)"
	}
	return "from " + e.Name
}

// escapeProperty escapes s for a .properties file.
// Keys additionally escape separators and comment markers.
func escapeProperty(s string, key bool) string {
	var b strings.Builder
	for i, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '=', ':', '#', '!':
			if key {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		case ' ':
			if key || i == 0 {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
