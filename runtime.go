package main

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/tflash/internal/config"
	"github.com/llehouerou/tflash/internal/errmsg"
	"github.com/llehouerou/tflash/internal/logging"
	"github.com/llehouerou/tflash/internal/mpris"
	"github.com/llehouerou/tflash/internal/notify"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/player"
	"github.com/llehouerou/tflash/internal/state"
	"github.com/llehouerou/tflash/internal/workflow"
)

// runtime owns everything a command needs to play audio. Resources are
// released in reverse order of acquisition.
type runtime struct {
	cfg     *config.Config
	logger  *log.Logger
	svc     playback.Service
	closers []io.Closer
}

type runtimeOptions struct {
	logToFile bool // the TUI owns the terminal
	desktop   bool // MPRIS and notifications
	persist   bool
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if paths := cmd.StringSlice("config"); len(paths) > 0 {
		return config.LoadFiles(paths...)
	}
	return config.Load()
}

func newLogger(cfg *config.Config, toFile bool) (*log.Logger, io.Closer, error) {
	opts := logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	if toFile {
		path, err := cfg.LogPath()
		if err != nil {
			return nil, nil, errors.Wrap(err, "resolve log path")
		}
		opts.File = path
	}
	return logging.New(opts)
}

func setup(cmd *cli.Command, opts runtimeOptions) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := newLogger(cfg, opts.logToFile)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, logger: logger}
	rt.push(logCloser)

	backend := player.NewSpeaker(player.SpeakerConfig{
		SampleRate:   cfg.Media.SampleRate,
		FetchTimeout: cfg.Media.FetchTimeout,
	}, logger.WithPrefix("player"))

	rt.svc = playback.New(backend, playback.Config{
		Placeholder:  cfg.Playback.Placeholder,
		SkipInterval: cfg.SkipInterval(),
		Volume:       cfg.Playback.Volume,
		PlaybackRate: cfg.Playback.Rate,
		AutoPlay:     cfg.Preferences.AutoPlay,
		Logger:       logger.WithPrefix("playback"),
	})
	rt.push(rt.svc)

	if opts.persist {
		rt.openSession(cmd.Bool("fresh"))
	}

	if opts.desktop {
		rt.attachDesktop()
	}

	logger.Info("started", "version", version, "webhook", cfg.HasWebhook())
	return rt, nil
}

// openSession restores the previous session and keeps it saved. A broken
// database only costs persistence.
func (rt *runtime) openSession(fresh bool) {
	mgr, err := state.Open(rt.logger.WithPrefix("state"))
	if err != nil {
		rt.logger.Warn(errmsg.Format(errmsg.OpSessionLoad, err))
		return
	}
	rt.push(mgr)

	if !fresh {
		session, err := mgr.Load()
		if err != nil {
			rt.logger.Warn(errmsg.Format(errmsg.OpSessionLoad, err))
		} else {
			state.Restore(rt.svc, session)
		}
	}
	rt.push(state.NewPersister(rt.svc, mgr))
}

func (rt *runtime) attachDesktop() {
	adapter, err := mpris.New(rt.svc, rt.logger.WithPrefix("mpris"))
	if err != nil {
		rt.logger.Warn("mpris unavailable", "err", err)
	} else {
		rt.push(adapter)
	}

	if !rt.cfg.NotificationsEnabled() {
		return
	}
	notifier, err := notify.New()
	if err != nil {
		rt.logger.Warn("notifications unavailable", "err", err)
		return
	}
	rt.push(notify.Watch(rt.svc, notifier, rt.logger.WithPrefix("notify")))
}

func (rt *runtime) push(c io.Closer) {
	rt.closers = append(rt.closers, c)
}

func (rt *runtime) workflow() *workflow.Client {
	return workflow.NewClient(rt.cfg.Workflow.WebhookURL, rt.cfg.Workflow.Timeout)
}

func (rt *runtime) request() workflow.Request {
	p := rt.cfg.Preferences
	return workflow.Request{
		Topics:         slices.Clone(p.Topics),
		BriefingLength: p.BriefingLength,
		DeliveryTime:   p.DeliveryTime,
	}
}

// Close releases resources last-in first-out and returns the first error.
func (rt *runtime) Close() error {
	var first error
	for _, c := range slices.Backward(rt.closers) {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	rt.closers = nil
	return first
}
