package hydrate

import (
	"github.com/Azhovan/hydrate/internal/normalize"
)

// Params is an insertion-ordered mapping of dotted keys to values.
// A key hydrated more than once keeps the position of its first occurrence
// and the value of its last. Params is not modified after Hydrate returns.
type Params struct {
	entries []Entry
	index   map[string]int
}

// Key returns the dotted configuration key for a variable name.
// The name is lower-cased and every underscore becomes a period; nothing else changes.
func Key(name string) string {
	return normalize.ToDotKey(name)
}

// Hydrate reads each named variable from env and returns the values keyed by Key(name).
// Unset variables map to "". A nil env behaves as an empty environment.
// Hydrate never fails.
func Hydrate(env Environment, names []string) *Params {
	p := &Params{
		entries: make([]Entry, 0, len(names)),
		index:   make(map[string]int, len(names)),
	}

	for _, name := range names {
		var value string
		var set bool
		if env != nil {
			value, set = env.Lookup(name)
		}

		entry := Entry{
			Key:   Key(name),
			Name:  name,
			Value: value,
			Set:   set,
		}

		if i, ok := p.index[entry.Key]; ok {
			p.entries[i] = entry
			continue
		}
		p.index[entry.Key] = len(p.entries)
		p.entries = append(p.entries, entry)
	}

	return p
}

// Len returns the number of distinct keys.
func (p *Params) Len() int {
	return len(p.entries)
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the value for key and whether the key was hydrated.
func (p *Params) Get(key string) (string, bool) {
	i, ok := p.index[key]
	if !ok {
		return "", false
	}
	return p.entries[i].Value, true
}

// Entries returns a copy of the entries in insertion order.
func (p *Params) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Map returns the mapping as a plain map.
func (p *Params) Map() map[string]string {
	m := make(map[string]string, len(p.entries))
	for _, e := range p.entries {
		m[e.Key] = e.Value
	}
	return m
}
