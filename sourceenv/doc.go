// Package sourceenv builds hydrate.Environment values from the process environment,
// KEY=VALUE pairs and dotenv files.
//
// Example:
//
//	fileEnv, err := sourceenv.Load(".env")
//	env := sourceenv.Layered(fileEnv, sourceenv.Snapshot())
//	params := hydrate.Hydrate(env, names)
package sourceenv
