package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Help adapts bindings to bubbles' help.KeyMap.
type Help struct {
	short []key.Binding
	full  [][]key.Binding
}

// NewHelp groups the bindings of each context into one help column; the
// short help lists the first context only.
func NewHelp(contexts ...string) Help {
	var h Help
	for _, ctx := range contexts {
		var col []key.Binding
		for _, b := range ByContext(ctx) {
			col = append(col, toKey(b))
		}
		if len(col) > 0 {
			h.full = append(h.full, col)
		}
	}
	if len(h.full) > 0 {
		h.short = h.full[0]
	}
	return h
}

func toKey(b Binding) key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(displayKeys(b.Keys), strings.ToLower(b.Description)),
	)
}

func displayKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		switch k {
		case " ":
			names[i] = "space"
		case "left":
			names[i] = "←"
		case "right":
			names[i] = "→"
		case "up":
			names[i] = "↑"
		case "down":
			names[i] = "↓"
		default:
			names[i] = k
		}
	}
	return strings.Join(names, "/")
}

// ShortHelp implements help.KeyMap.
func (h Help) ShortHelp() []key.Binding { return h.short }

// FullHelp implements help.KeyMap.
func (h Help) FullHelp() [][]key.Binding { return h.full }
