// Package manifest loads the ordered list of environment variable names to hydrate.
//
// Format is auto-detected from extension (.yaml, .yml, .json, .toml); anything else
// is read as plain text with one name per line.
//
// Example:
//
//	names, err := manifest.New("jira.vars.yaml", manifest.Options{Required: true}).Load(ctx)
//	params := hydrate.Hydrate(sourceenv.Snapshot(), names)
package manifest
