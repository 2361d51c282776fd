package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/workflow"
)

const statusTimeout = 4 * time.Second

// watchState waits for the next snapshot. The subscription channel always
// holds the latest state, so a slow frame skips intermediate ones.
func watchState(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case st := <-sub.States:
			return StateMsg(st)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// generateCmd triggers the workflow webhook off the UI goroutine.
func generateCmd(t Trigger, req workflow.Request) tea.Cmd {
	return func() tea.Msg {
		return GenerateResultMsg{Err: t.Trigger(context.Background(), req)}
	}
}

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
