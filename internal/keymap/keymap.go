// Package keymap defines key bindings and action dispatch for the dashboard.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionSwitchFocus Action = "switch_focus"
	ActionHelp        Action = "help"
	ActionGenerate    Action = "generate"

	// Playback actions
	ActionPlayPause           Action = "play_pause"
	ActionSkipForward         Action = "skip_forward"
	ActionSkipBackward        Action = "skip_backward"
	ActionVolumeUp            Action = "volume_up"
	ActionVolumeDown          Action = "volume_down"
	ActionMute                Action = "mute"
	ActionRateUp              Action = "rate_up"
	ActionRateDown            Action = "rate_down"
	ActionNext                Action = "next"
	ActionTogglePlayerDisplay Action = "toggle_player_display"

	// List actions, handled by the focused panel
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionSelect     Action = "select"
	ActionEnqueue    Action = "enqueue"
	ActionRemove     Action = "remove"
	ActionClearQueue Action = "clear_queue"
	ActionJumpStart  Action = "jump_start"
	ActionJumpEnd    Action = "jump_end"
)

// Binding maps keys to an action in a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "library", "queue"
}

// All contains every key binding, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", "global"},
	{ActionGenerate, []string{"g"}, "Generate briefing now", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionSkipBackward, []string{"left"}, "Back 15s", "playback"},
	{ActionSkipForward, []string{"right"}, "Forward 15s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionMute, []string{"m"}, "Mute/unmute", "playback"},
	{ActionRateDown, []string{"["}, "Slower", "playback"},
	{ActionRateUp, []string{"]"}, "Faster", "playback"},
	{ActionNext, []string{"n"}, "Next in queue", "playback"},
	{ActionTogglePlayerDisplay, []string{"v"}, "Mini/full player", "playback"},

	// Library
	{ActionMoveDown, []string{"j", "down"}, "Move down", "library"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "library"},
	{ActionSelect, []string{"enter"}, "Play briefing", "library"},
	{ActionEnqueue, []string{"a"}, "Add to queue", "library"},

	// Queue panel
	{ActionMoveDown, []string{"j", "down"}, "Move down", "queue"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "queue"},
	{ActionJumpStart, []string{"home"}, "First item", "queue"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "queue"},
	{ActionSelect, []string{"enter"}, "Play now", "queue"},
	{ActionRemove, []string{"d", "delete"}, "Remove", "queue"},
	{ActionClearQueue, []string{"c"}, "Clear queue", "queue"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
