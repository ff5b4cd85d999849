package settings

import (
	"strings"
)

// tagConfig holds parsed directives from a struct field's `conf` tag.
type tagConfig struct {
	name       string   // Dotted key (name:hydrate.format)
	defValue   string   // Default value (default:value)
	oneof      []string // Allowed values (oneof:a,b,c), matched case-insensitively
	hasDefault bool     // Whether a default directive was present
}

// directives lists the directive names parseTag understands.
var directives = []string{"name:", "default:", "oneof:"}

// parseTag parses a `conf` struct tag.
// Tag format: "directive1:value1,directive2:value2,..."
// oneof consumes the following comma-separated values until the next directive.
func parseTag(tag string) tagConfig {
	cfg := tagConfig{}

	for _, directive := range splitDirectives(tag) {
		name, value, _ := strings.Cut(strings.TrimSpace(directive), ":")
		name = strings.TrimSpace(name)

		switch name {
		case "name":
			cfg.name = value
		case "default":
			cfg.defValue = value
			cfg.hasDefault = true
		case "oneof":
			for _, option := range strings.Split(value, ",") {
				if option = strings.TrimSpace(option); option != "" {
					cfg.oneof = append(cfg.oneof, option)
				}
			}
		}
	}

	return cfg
}

// splitDirectives splits a tag on commas, keeping commas that belong to a oneof list.
func splitDirectives(tag string) []string {
	var out []string
	for _, part := range strings.Split(tag, ",") {
		if len(out) > 0 && strings.HasPrefix(strings.TrimSpace(out[len(out)-1]), "oneof:") && !startsWithDirective(part) {
			out[len(out)-1] += "," + part
			continue
		}
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	return out
}

func startsWithDirective(s string) bool {
	s = strings.TrimSpace(s)
	for _, d := range directives {
		if strings.HasPrefix(s, d) {
			return true
		}
	}
	return false
}
