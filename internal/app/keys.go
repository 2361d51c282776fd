// internal/app/keys.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/tflash/internal/errmsg"
	"github.com/llehouerou/tflash/internal/keymap"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/ui/playerbar"
)

// handleKey resolves global and playback bindings first; anything else goes
// to the focused panel.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		m.sub.Close()
		return m, tea.Quit
	case keymap.ActionSwitchFocus:
		if m.focus == FocusLibrary {
			m.setFocus(FocusQueue)
		} else {
			m.setFocus(FocusLibrary)
		}
		return m, nil
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case keymap.ActionGenerate:
		return m.generate()
	case keymap.ActionPlayPause:
		return m, m.togglePlayPause()
	case keymap.ActionSkipForward:
		m.svc.SkipForward()
	case keymap.ActionSkipBackward:
		m.svc.SkipBackward()
	case keymap.ActionVolumeUp:
		m.svc.SetVolume(m.state.Volume + volumeStep)
	case keymap.ActionVolumeDown:
		m.svc.SetVolume(m.state.Volume - volumeStep)
	case keymap.ActionMute:
		m.toggleMute()
	case keymap.ActionRateUp:
		m.svc.SetPlaybackRate(m.state.PlaybackRate + rateStep)
	case keymap.ActionRateDown:
		m.svc.SetPlaybackRate(m.state.PlaybackRate - rateStep)
	case keymap.ActionNext:
		if err := m.svc.Advance(); err != nil {
			return m, m.setStatus(errmsg.Format(errmsg.OpPlaybackAdvance, err))
		}
	case keymap.ActionTogglePlayerDisplay:
		if m.displayMode == playerbar.ModeCompact {
			m.displayMode = playerbar.ModeExpanded
		} else {
			m.displayMode = playerbar.ModeCompact
		}
		m.resize()
	default:
		return m.updateFocused(msg)
	}
	return m, nil
}

func (m *Model) togglePlayPause() tea.Cmd {
	err := m.svc.TogglePlayPause()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, playback.ErrNoTrack):
		return m.setStatus("Nothing to play: pick a briefing with enter")
	default:
		return m.setStatus(errmsg.Format(errmsg.OpPlaybackResume, err))
	}
}

// toggleMute silences playback, remembering the volume to restore.
func (m *Model) toggleMute() {
	if m.state.Volume > 0 {
		m.unmuteTo = m.state.Volume
		m.svc.SetVolume(0)
		return
	}
	v := m.unmuteTo
	if v == 0 {
		v = playback.DefaultVolume
	}
	m.svc.SetVolume(v)
}

func (m Model) generate() (tea.Model, tea.Cmd) {
	if m.trigger == nil || m.generating {
		return m, nil
	}
	m.generating = true
	return m, tea.Batch(m.setStatus("Generating briefing…"), generateCmd(m.trigger, m.request))
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == FocusQueue {
		m.queue, cmd = m.queue.Update(msg)
	} else {
		m.library, cmd = m.library.Update(msg)
	}
	return m, cmd
}

// handleMouse routes a mouse event to the panel under the pointer, in that
// panel's coordinates, focusing it on click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	y := msg.Y - headerHeight
	if y < 0 || y >= m.contentHeight() {
		return m, nil
	}

	target := FocusLibrary
	switch {
	case m.narrow && y >= m.libraryHeight:
		target = FocusQueue
		msg.Y = y - m.libraryHeight
	case !m.narrow && msg.X >= m.libraryWidth:
		target = FocusQueue
		msg.X -= m.libraryWidth
		msg.Y = y
	default:
		msg.Y = y
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.setFocus(target)
	}
	if target != m.focus {
		return m, nil
	}
	return m.updateFocused(msg)
}
