// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tflash/internal/config"
	"github.com/llehouerou/tflash/internal/errmsg"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/playlist"
	"github.com/llehouerou/tflash/internal/ui/action"
	"github.com/llehouerou/tflash/internal/ui/library"
	"github.com/llehouerou/tflash/internal/ui/queuepanel"
	"github.com/llehouerou/tflash/internal/workflow"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case StateMsg:
		cmd := m.applyState(playback.State(msg))
		return m, tea.Batch(cmd, watchState(m.sub))

	case ServiceClosedMsg:
		m.closed = true
		return m, tea.Quit

	case GenerateResultMsg:
		m.generating = false
		if msg.Err != nil {
			m.logger.Error("generate briefing", "err", msg.Err)
			return m, m.setStatus(errmsg.Hinted(errmsg.OpGenerate, msg.Err,
				workflow.ErrNotConfigured, "set workflow.webhook_url or "+config.EnvWebhookURL))
		}
		return m, m.setStatus("Briefing requested, it will appear in your library shortly")

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case action.Msg:
		return m.handleAction(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// applyState makes st the rendered snapshot and surfaces new resource
// errors in the status line.
func (m *Model) applyState(st playback.State) tea.Cmd {
	if st.Version < m.state.Version {
		return nil
	}
	hadTrack := m.state.HasTrack()
	m.state = st
	m.library.SetState(st)
	m.queue.SetState(st)
	if hadTrack != st.HasTrack() {
		// the player bar appeared or went away
		m.resize()
	}

	errText := ""
	if st.Err != nil {
		errText = st.Err.Error()
	}
	if errText == m.lastErr {
		return nil
	}
	m.lastErr = errText
	if errText == "" {
		return nil
	}
	return m.setStatus(errmsg.Format(errmsg.OpPlaybackStart, st.Err))
}

// handleAction performs what a panel asked for.
func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	m.logger.Debug("action", "msg", msg)
	switch a := msg.Action.(type) {
	case library.Play:
		if err := m.svc.PlayTrack(a.Track); err != nil {
			return m, m.setStatus(errmsg.FormatWith(errmsg.OpPlaybackStart, a.Track.Title, err))
		}
	case library.Enqueue:
		m.svc.AddToQueue(a.Track)
		return m, m.setStatus("Added “" + a.Track.Title + "” to the queue")
	case queuepanel.PlayEntry:
		e, ok := m.entry(a.Key)
		if !ok {
			return m, nil
		}
		m.svc.RemoveEntry(a.Key)
		if err := m.svc.PlayTrack(e.Track); err != nil {
			return m, m.setStatus(errmsg.FormatWith(errmsg.OpPlaybackStart, e.Track.Title, err))
		}
	case queuepanel.RemoveEntry:
		m.svc.RemoveEntry(a.Key)
	case queuepanel.ClearQueue:
		m.svc.ClearQueue()
	}
	return m, nil
}

// entry finds a queue instance by key in the rendered snapshot.
func (m Model) entry(key string) (playlist.Entry, bool) {
	for _, e := range m.state.Queue {
		if e.Key == key {
			return e, true
		}
	}
	return playlist.Entry{}, false
}
