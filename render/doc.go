// Package render writes hydrated parameters for downstream consumption:
// as a properties, JSON, YAML or TOML document, or through a text/template.
package render
