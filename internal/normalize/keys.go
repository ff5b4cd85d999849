package normalize

import (
	"strings"
)

// ToDotKey converts an environment variable name to a lowercase dot-separated key.
// Every underscore becomes a period; all other characters pass through lower-cased.
// Examples:
//   - "JIRA_URL" → "jira.url"
//   - "A_B_C" → "a.b.c"
//   - "DB__HOST" → "db..host"
//   - "jira.url" → "jira.url"
func ToDotKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", ".")
}

// ToEnvName converts a dotted key back to the conventional variable name.
// It is the inverse of ToDotKey for names made of uppercase letters, digits and underscores.
// Examples:
//   - "jira.url" → "JIRA_URL"
//   - "hydrate.log.level" → "HYDRATE_LOG_LEVEL"
func ToEnvName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
