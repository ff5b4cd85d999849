package sourceenv

import (
	"fmt"
	"os"
	"strings"

	"github.com/Azhovan/hydrate"
	"github.com/joho/godotenv"
)

// Snapshot copies the current process environment.
// Later changes to the process environment are not visible through the result.
func Snapshot() hydrate.MapEnv {
	return FromPairs(os.Environ())
}

// FromPairs parses KEY=VALUE strings as returned by os.Environ.
// The value is everything after the first '='. Entries without '=' or with an
// empty key are skipped. A repeated key keeps its last value.
func FromPairs(pairs []string) hydrate.MapEnv {
	result := make(hydrate.MapEnv, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		result[key] = value
	}

	return result
}

// Load reads dotenv files. Values from later files override earlier ones.
// Unlike godotenv.Load, the process environment is left untouched.
func Load(files ...string) (hydrate.MapEnv, error) {
	result := make(hydrate.MapEnv)

	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", file, err)
		}
		for k, v := range values {
			result[k] = v
		}
	}

	return result, nil
}

type layered struct {
	envs []hydrate.Environment
}

// Layered combines environments. Later environments override earlier ones.
// Nil environments are ignored.
func Layered(envs ...hydrate.Environment) hydrate.Environment {
	l := &layered{envs: make([]hydrate.Environment, 0, len(envs))}
	for _, env := range envs {
		if env != nil {
			l.envs = append(l.envs, env)
		}
	}
	return l
}

// Lookup searches from the last environment to the first.
func (l *layered) Lookup(name string) (string, bool) {
	for i := len(l.envs) - 1; i >= 0; i-- {
		if v, ok := l.envs[i].Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}
