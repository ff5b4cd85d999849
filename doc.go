// Package hydrate turns environment variable names into dotted configuration keys.
//
// Quick Start:
//
//	params := hydrate.Hydrate(hydrate.OSEnv, []string{"JIRA_URL", "JIRA_DB_HOST"})
//	params.Get("jira.url")     // value of $JIRA_URL, or "" when unset
//	params.Get("jira.db.host") // value of $JIRA_DB_HOST
//
// Keys are the variable names lower-cased with every underscore replaced by a period.
// Missing variables are not an error; they hydrate to the empty string.
//
// Environments come from sourceenv, name lists from manifest, and output is written
// by render. See example_test.go for detailed usage.
package hydrate
