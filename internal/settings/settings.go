// Package settings holds the hydrate command's own configuration.
//
// Settings are read from HYDRATE_* variables through the hydrator itself, so
// HYDRATE_LOG_LEVEL binds to the key "hydrate.log.level". Command-line flags are
// overlaid on the same keys before binding.
package settings

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Azhovan/hydrate"
	"github.com/Azhovan/hydrate/internal/normalize"
)

// Settings configures a hydrate run.
type Settings struct {
	Manifest string `conf:"name:hydrate.manifest"`
	Format   string `conf:"name:hydrate.format,default:properties,oneof:properties,json,yaml,yml,toml"`
	Output   string `conf:"name:hydrate.output"`
	Template string `conf:"name:hydrate.template"`
	EnvFile  string `conf:"name:hydrate.env.file"`
	LogLevel string `conf:"name:hydrate.log.level,default:info,oneof:debug,info,warn,error"`
}

// Keys returns the dotted keys Settings binds, in field order.
func Keys() []string {
	t := reflect.TypeOf(Settings{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tags := parseTag(t.Field(i).Tag.Get("conf")); tags.name != "" {
			keys = append(keys, tags.name)
		}
	}
	return keys
}

// EnvNames returns the environment variables Settings reads.
func EnvNames() []string {
	keys := Keys()
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = normalize.ToEnvName(key)
	}
	return names
}

// FromEnv hydrates the settings variables from env.
func FromEnv(env hydrate.Environment) map[string]string {
	return hydrate.Hydrate(env, EnvNames()).Map()
}

// Bind populates Settings from values keyed by dotted key and validates the result.
// Missing or empty values fall back to the field's default.
func Bind(values map[string]string) (*Settings, error) {
	s := &Settings{}
	v := reflect.ValueOf(s).Elem()
	t := v.Type()

	var fieldErrors []FieldError
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Type.Kind() != reflect.String {
			continue
		}

		tags := parseTag(field.Tag.Get("conf"))
		if tags.name == "" {
			continue
		}

		value := strings.TrimSpace(values[tags.name])
		if value == "" && tags.hasDefault {
			value = tags.defValue
		}

		value, errs := validateField(value, tags)
		fieldErrors = append(fieldErrors, errs...)
		v.Field(i).SetString(value)
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{FieldErrors: fieldErrors}
	}
	return s, nil
}

// Load reads settings from env, applies overrides (keyed by dotted key) and binds them.
func Load(env hydrate.Environment, overrides map[string]string) (*Settings, error) {
	values := FromEnv(env)
	for k, v := range overrides {
		values[k] = v
	}

	s, err := Bind(values)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}

// validateField checks the oneof constraint for a bound value.
// A match returns the allowed spelling, so "JSON" binds as "json".
func validateField(value string, tags tagConfig) (string, []FieldError) {
	if value == "" || len(tags.oneof) == 0 {
		return value, nil
	}

	for _, allowed := range tags.oneof {
		if strings.EqualFold(value, allowed) {
			return allowed, nil
		}
	}
	return value, []FieldError{{
		FieldPath: tags.name,
		Code:      ErrCodeOneOf,
		Message:   fmt.Sprintf("value %q must be one of: %s", value, strings.Join(tags.oneof, ", ")),
	}}
}
