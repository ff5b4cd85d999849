package hydrate

import "os"

// Environment is a read-only view of environment variables.
// Lookup reports the value of the named variable and whether it is present.
type Environment interface {
	Lookup(name string) (string, bool)
}

// MapEnv is an Environment backed by a plain map.
type MapEnv map[string]string

// Lookup returns the value stored under name.
func (m MapEnv) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// EnvFunc is a function adapter for the Environment interface.
type EnvFunc func(name string) (string, bool)

func (f EnvFunc) Lookup(name string) (string, bool) {
	return f(name)
}

// OSEnv reads the live process environment.
// Prefer sourceenv.Snapshot when a run must see a single consistent view.
var OSEnv Environment = EnvFunc(os.LookupEnv)
