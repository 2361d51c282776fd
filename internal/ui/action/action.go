// Package action carries requests from the dashboard panels up to the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a request raised by a panel. ActionType names it for logs,
// e.g. "queuepanel.remove_entry".
type Action interface {
	ActionType() string
}

// Msg is the tea.Msg a panel emits for an Action.
type Msg struct {
	Source string // "library" or "queuepanel"
	Action Action
}

func (m Msg) String() string {
	if m.Action == nil {
		return m.Source
	}
	return m.Source + ": " + m.Action.ActionType()
}

// Cmd returns a command that emits a on behalf of source.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg { return Msg{Source: source, Action: a} }
}
