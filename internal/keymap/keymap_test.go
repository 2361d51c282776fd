package keymap

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var _ help.KeyMap = Help{}

func TestByContext(t *testing.T) {
	tests := []struct {
		context string
		min     int
	}{
		{"global", 4},
		{"playback", 10},
		{"library", 4},
		{"queue", 7},
		{"unknown", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			got := ByContext(tt.context)
			if len(got) < tt.min {
				t.Errorf("ByContext(%q) = %d bindings, want >= %d", tt.context, len(got), tt.min)
			}
			if tt.min == 0 && len(got) != 0 {
				t.Errorf("ByContext(%q) = %d bindings, want none", tt.context, len(got))
			}
			for _, b := range got {
				if b.Context != tt.context {
					t.Errorf("binding %v has context %q", b.Action, b.Context)
				}
			}
		})
	}
}

func TestAll_NoKeyConflictsWithinContext(t *testing.T) {
	seen := map[string]Action{}
	for _, b := range All {
		for _, k := range b.Keys {
			id := b.Context + "/" + k
			if prev, ok := seen[id]; ok && prev != b.Action {
				t.Errorf("key %q in %s bound to %v and %v", k, b.Context, prev, b.Action)
			}
			seen[id] = b.Action
		}
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(All)

	tests := []struct {
		key  string
		want Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"left", ActionSkipBackward},
		{"right", ActionSkipForward},
		{"+", ActionVolumeUp},
		{"=", ActionVolumeUp},
		{"[", ActionRateDown},
		{"]", ActionRateUp},
		{"n", ActionNext},
		{"g", ActionGenerate},
		{"d", ActionRemove},
		{"enter", ActionSelect},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := r.Resolve(tt.key); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestResolver_FirstBindingWins(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionSelect, []string{"enter"}, "Play", "library"},
		{ActionEnqueue, []string{"enter"}, "Add", "queue"},
	})

	if got := r.Resolve("enter"); got != ActionSelect {
		t.Errorf("Resolve(enter) = %q, want %q", got, ActionSelect)
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver(All)

	got := r.KeysFor(ActionMoveDown)
	slices.Sort(got)
	if !slices.Equal(got, []string{"down", "j"}) {
		t.Errorf("KeysFor(move_down) = %v, want deduplicated [down j]", got)
	}
}

func TestForContexts_OnlyNamedContexts(t *testing.T) {
	r := ForContexts("global", "playback")

	if got := r.Resolve(" "); got != ActionPlayPause {
		t.Errorf("Resolve(space) = %q, want %q", got, ActionPlayPause)
	}
	if got := r.Resolve("g"); got != ActionGenerate {
		t.Errorf("Resolve(g) = %q, want %q", got, ActionGenerate)
	}
	// list navigation stays with the focused panel
	if got := r.Resolve("j"); got != "" {
		t.Errorf("Resolve(j) = %q, want unbound", got)
	}
}

func TestHelp_MatchesKeys(t *testing.T) {
	h := NewHelp("playback", "global")

	if len(h.FullHelp()) != 2 {
		t.Fatalf("columns = %d, want 2", len(h.FullHelp()))
	}
	short := h.ShortHelp()
	if len(short) != len(ByContext("playback")) {
		t.Errorf("short help = %d bindings, want playback bindings", len(short))
	}

	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	if !key.Matches(space, short[0]) {
		t.Errorf("space should match %q", short[0].Help().Key)
	}
	if short[0].Help().Key != "space" {
		t.Errorf("help key = %q, want space", short[0].Help().Key)
	}
}
