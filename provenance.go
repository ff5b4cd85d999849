package hydrate

// Entry is one hydrated key together with the variable it was read from.
type Entry struct {
	Key   string // Dotted key (e.g., "jira.url")
	Name  string // Variable that produced the retained value (e.g., "JIRA_URL")
	Value string // Variable value, "" when unset
	Set   bool   // Whether the variable was present in the environment
}

// Unset returns the entries whose variable was absent from the environment, in key order.
func (p *Params) Unset() []Entry {
	var unset []Entry
	for _, e := range p.entries {
		if !e.Set {
			unset = append(unset, e)
		}
	}
	return unset
}

// Source returns the variable name that produced key.
func (p *Params) Source(key string) (string, bool) {
	i, ok := p.index[key]
	if !ok {
		return "", false
	}
	return p.entries[i].Name, true
}
