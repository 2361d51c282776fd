package queuepanel

import (
	"github.com/llehouerou/tflash/internal/ui/action"
)

// PlayEntry requests that a queued briefing start now.
type PlayEntry struct {
	Key string
}

// ActionType implements action.Action.
func (a PlayEntry) ActionType() string { return "queuepanel.play_entry" }

// RemoveEntry requests removal of one queue instance.
type RemoveEntry struct {
	Key string
}

// ActionType implements action.Action.
func (a RemoveEntry) ActionType() string { return "queuepanel.remove_entry" }

// ClearQueue requests that every queued briefing be dropped.
type ClearQueue struct{}

// ActionType implements action.Action.
func (a ClearQueue) ActionType() string { return "queuepanel.clear_queue" }

// Source tags the actions this panel emits.
const Source = "queuepanel"

// ActionMsg wraps a as if the queue panel had emitted it.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
