// internal/app/app.go
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/keymap"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/ui/library"
	"github.com/llehouerou/tflash/internal/ui/playerbar"
	"github.com/llehouerou/tflash/internal/ui/queuepanel"
	"github.com/llehouerou/tflash/internal/workflow"
)

// FocusTarget is the panel receiving list keys.
type FocusTarget int

const (
	FocusLibrary FocusTarget = iota
	FocusQueue
)

func (f FocusTarget) String() string {
	if f == FocusQueue {
		return "Queue"
	}
	return "Library"
}

func (f FocusTarget) context() string {
	if f == FocusQueue {
		return "queue"
	}
	return "library"
}

const (
	volumeStep = 0.05
	rateStep   = 0.25
)

// Trigger starts briefing generation.
type Trigger interface {
	Trigger(ctx context.Context, r workflow.Request) error
}

// Options configures the dashboard.
type Options struct {
	Service  playback.Service
	Catalog  []briefing.Entry // defaults to briefing.Catalog()
	Trigger  Trigger          // nil disables "generate now"
	Request  workflow.Request
	Expanded bool // start with the now-playing panel
	Logger   *log.Logger
}

// Model is the root dashboard model. It keeps no playback state of its own:
// everything it shows comes from the last snapshot the service published.
type Model struct {
	svc     playback.Service
	sub     *playback.Subscription
	trigger Trigger
	request workflow.Request
	logger  *log.Logger

	keys     *keymap.Resolver
	help     help.Model
	helpKeys keymap.Help

	library     library.Model
	queue       queuepanel.Model
	state       playback.State
	focus       FocusTarget
	displayMode playerbar.DisplayMode

	status     string
	statusSeq  int
	lastErr    string
	unmuteTo   float64
	generating bool
	closed     bool

	width, height int
	narrow        bool
	libraryWidth  int
	libraryHeight int
}

// New creates the dashboard and subscribes to the service.
func New(opts Options) Model {
	if opts.Catalog == nil {
		opts.Catalog = briefing.Catalog()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	m := Model{
		svc:     opts.Service,
		sub:     opts.Service.Watch(),
		trigger: opts.Trigger,
		request: opts.Request,
		logger:  opts.Logger,
		keys:    keymap.ForContexts("global", "playback"),
		help:    help.New(),
		library: library.New(opts.Catalog),
		queue:   queuepanel.New(),
		state:   opts.Service.Snapshot(),
	}
	if opts.Expanded {
		m.displayMode = playerbar.ModeExpanded
	}
	m.setFocus(FocusLibrary)
	m.library.SetState(m.state)
	m.queue.SetState(m.state)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return watchState(m.sub)
}

// Close releases the service subscription.
func (m Model) Close() {
	m.sub.Close()
}

// State returns the last snapshot the dashboard rendered.
func (m Model) State() playback.State {
	return m.state
}

// Focus returns the focused panel.
func (m Model) Focus() FocusTarget {
	return m.focus
}

func (m *Model) setFocus(f FocusTarget) {
	m.focus = f
	m.library.SetFocused(f == FocusLibrary)
	m.queue.SetFocused(f == FocusQueue)
	m.helpKeys = keymap.NewHelp("playback", f.context(), "global")
}

// setStatus shows msg in the header until it expires.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusSeq++
	m.status = msg
	return clearStatusAfter(m.statusSeq)
}
