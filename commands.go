package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/tflash/internal/app"
	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/config"
	"github.com/llehouerou/tflash/internal/errmsg"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/remote"
	"github.com/llehouerou/tflash/internal/stderr"
	"github.com/llehouerou/tflash/internal/ui/render"
	"github.com/llehouerou/tflash/internal/workflow"
)

func tuiCommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Open the dashboard (default)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "expanded",
				Aliases: []string{"e"},
				Usage:   "start with the expanded now-playing panel",
			},
			&cli.BoolFlag{
				Name:  "remote",
				Usage: "also serve the websocket remote control",
			},
		},
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	rt, err := setup(cmd, runtimeOptions{logToFile: true, desktop: true, persist: true})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer rt.Close()

	if err := stderr.Start(rt.logger); err != nil {
		rt.logger.Warn("stderr capture unavailable", "err", err)
	}
	defer stderr.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cmd.Bool("remote") {
		srv := newRemote(rt)
		rt.push(srv)
		go func() {
			if err := srv.ListenAndServe(ctx, rt.cfg.Remote.Addr); err != nil {
				rt.logger.Error(errmsg.FormatWith(errmsg.OpRemoteListen, rt.cfg.Remote.Addr, err))
			}
		}()
	}

	model := app.New(app.Options{
		Service:  rt.svc,
		Trigger:  rt.workflow(),
		Request:  rt.request(),
		Expanded: cmd.Bool("expanded"),
		Logger:   rt.logger.WithPrefix("app"),
	})
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func libraryCommand() *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"ls"},
		Usage:   "List briefings, playlists and the schedule",
		Action: func(_ context.Context, _ *cli.Command) error {
			printLibrary(os.Stdout)
			return nil
		},
	}
}

func printLibrary(out *os.File) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDATE\tLENGTH\tSTATUS\tTOPICS")
	for _, e := range briefing.Catalog() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Title, e.Date, render.Clock(e.Duration), e.Status, e.TopicLine())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PLAYLIST\tBRIEFINGS\tTOTAL")
	for _, pl := range briefing.Playlists() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", pl.Name, pl.Count, render.Span(pl.Duration))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "UPCOMING\tWHEN\tTOPICS\tREPEATS")
	for _, u := range briefing.Schedule() {
		if !u.Enabled {
			continue
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n",
			u.Title, u.Day, u.Time, strings.Join(u.Topics, ", "), u.Recurring)
	}
	_ = w.Flush()
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play briefings without the dashboard",
		ArgsUsage: "<id|url|file>...",
		Action:    runPlay,
	}
}

// resolveTrack maps a catalog id to its briefing. Anything else is played
// as a bare locator.
func resolveTrack(arg string) briefing.Track {
	if t, ok := briefing.Find(arg); ok {
		return t
	}
	return briefing.Track{ID: arg, Title: arg, AudioURL: arg}
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("play needs at least one briefing id or locator")
	}

	rt, err := setup(cmd, runtimeOptions{desktop: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	done := make(chan error, 1)
	unsub := rt.svc.Subscribe(headlessObserver(rt, done))
	defer unsub()

	if err := startHeadless(rt, args); err != nil {
		return errors.New(errmsg.Format(errmsg.OpPlaybackStart, err))
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return nil
	}
}

// startHeadless queues args[1:] and plays args[0]. A track that fails to
// open or start is left to the observer, which skips it or ends the run.
func startHeadless(rt *runtime, args []string) error {
	first := resolveTrack(args[0])
	// cued first so auto-play leaves the queue alone
	rt.svc.Cue(first, 0)
	for _, arg := range args[1:] {
		rt.svc.AddToQueue(resolveTrack(arg))
	}
	err := rt.svc.PlayTrack(first)
	if errors.Is(err, playback.ErrClosed) {
		return err
	}
	if err != nil {
		rt.logger.Debug("first track failed", "err", err)
	}
	return nil
}

// headlessObserver logs track changes and reports on done once the last
// track has played to its end. A failed track is skipped.
func headlessObserver(rt *runtime, done chan<- error) func(playback.State) {
	var (
		started bool
		current string
		lastErr error
	)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}
	return func(st playback.State) {
		if st.HasTrack() && st.CurrentTrack.ID != current {
			current = st.CurrentTrack.ID
			rt.logger.Info("now playing", "title", st.CurrentTrack.Title, "queued", len(st.Queue))
		}
		//nolint:errorlint // a republished failure is the same value
		if st.Err != nil && st.Err != lastErr {
			lastErr = st.Err
			rt.logger.Error(errmsg.Format(errmsg.OpPlaybackStart, st.Err))
			if len(st.Queue) == 0 {
				finish(st.Err)
				return
			}
			_ = rt.svc.Advance()
			return
		}
		if st.IsPlaying {
			started = true
			return
		}
		if started && st.HasTrack() && len(st.Queue) == 0 && st.Duration > 0 && st.CurrentTime >= st.Duration {
			finish(nil)
		}
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run headless and accept websocket remote control",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address (overrides remote.addr)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rt, err := setup(cmd, runtimeOptions{desktop: true, persist: true})
			if err != nil {
				return err
			}
			defer rt.Close()

			addr := rt.cfg.Remote.Addr
			if a := cmd.String("addr"); a != "" {
				addr = a
			}
			srv := newRemote(rt)
			rt.push(srv)
			rt.logger.Info("remote control listening", "addr", addr)
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return errors.New(errmsg.FormatWith(errmsg.OpRemoteListen, addr, err))
			}
			return nil
		},
	}
}

func newRemote(rt *runtime) *remote.Server {
	return remote.New(rt.svc, remote.Options{
		Lookup: briefing.Find,
		Logger: rt.logger.WithPrefix("remote"),
	})
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Ask the automation workflow for a new briefing",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "topic",
				Usage: "topic to cover (repeatable, overrides preferences)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client := workflow.NewClient(cfg.Workflow.WebhookURL, cfg.Workflow.Timeout)
			req := workflow.Request{
				Topics:         cfg.Preferences.Topics,
				BriefingLength: cfg.Preferences.BriefingLength,
				DeliveryTime:   cfg.Preferences.DeliveryTime,
			}
			if topics := cmd.StringSlice("topic"); len(topics) > 0 {
				req.Topics = topics
			}
			if err := client.Trigger(ctx, req); err != nil {
				return errors.New(errmsg.Hinted(errmsg.OpGenerate, err, workflow.ErrNotConfigured,
					"set "+config.EnvWebhookURL+" or workflow.webhook_url"))
			}
			fmt.Println("Briefing requested. It will appear in your library shortly.")
			return nil
		},
	}
}
