package keymap

import "slices"

// Resolver answers which action a key press means.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewResolver indexes bindings. A key already claimed by an earlier
// binding keeps its first action.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if _, taken := r.actions[key]; !taken {
				r.actions[key] = b.Action
			}
			if !slices.Contains(r.keys[b.Action], key) {
				r.keys[b.Action] = append(r.keys[b.Action], key)
			}
		}
	}
	return r
}

// ForContexts resolves the bindings of the named contexts, earlier
// contexts taking precedence.
func ForContexts(contexts ...string) *Resolver {
	var bindings []Binding
	for _, c := range contexts {
		bindings = append(bindings, ByContext(c)...)
	}
	return NewResolver(bindings)
}

// Resolve returns the action bound to key, or "" when there is none.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}
