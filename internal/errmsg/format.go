// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart   Op = "start playback"
	OpPlaybackResume  Op = "resume playback"
	OpPlaybackSeek    Op = "seek"
	OpPlaybackAdvance Op = "play next briefing"

	// Queue operations
	OpQueueAdd     Op = "add to queue"
	OpQueueRestore Op = "restore queue"

	// Session persistence
	OpSessionLoad Op = "load session"
	OpSessionSave Op = "save session"

	// Workflow operations
	OpGenerate Op = "generate briefing"

	// Remote control
	OpRemoteListen  Op = "start remote control"
	OpRemoteCommand Op = "run remote command"

	// Media
	OpProbe Op = "probe audio"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Hinted formats err like Format, but shows hint instead of the error
// text when err matches target.
func Hinted(op Op, err, target error, hint string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, target) {
		return fmt.Sprintf("Cannot %s: %s", op, hint)
	}
	return Format(op, err)
}
