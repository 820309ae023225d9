package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"focusclock/internal/app"
	"focusclock/internal/audio"
	"focusclock/internal/core/timer"
	"focusclock/internal/notify"
	"focusclock/internal/platform"
	"focusclock/internal/ui/timerview"
)

const (
	flagCycles = "cycles"
	flagTick   = "tick"
	flagNote   = "note"
)

// headlessOptions tune a terminal run.
type headlessOptions struct {
	// Cycles stops the run after this many completed pomodoros; 0 runs until interrupted.
	Cycles int
	Tick   time.Duration
	Note   string
}

func addHeadlessFlags(cmd *cobra.Command) {
	cmd.Flags().Int(flagCycles, 0, "with --headless, stop after this many pomodoros (0 runs until interrupted)")
	cmd.Flags().Duration(flagTick, time.Second, "countdown step length")
	cmd.Flags().String(flagNote, "", "note for the first focus interval")
	_ = cmd.Flags().MarkHidden(flagTick)
}

func headlessOptionsFrom(cmd *cobra.Command) headlessOptions {
	cycles, _ := cmd.Flags().GetInt(flagCycles)
	tick, _ := cmd.Flags().GetDuration(flagTick)
	note, _ := cmd.Flags().GetString(flagNote)
	return headlessOptions{Cycles: cycles, Tick: tick, Note: note}
}

// lockedWriter serializes writes from the reporter, the bell and the notifier.
type lockedWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

func (locked *lockedWriter) Write(data []byte) (int, error) {
	locked.mu.Lock()
	defer locked.mu.Unlock()
	return locked.writer.Write(data)
}

func runHeadless(ctx context.Context, env *environment, options headlessOptions, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := env.openStore()
	if err != nil {
		return err
	}
	journal, err := env.openJournal()
	if err != nil {
		return err
	}

	out = &lockedWriter{writer: out}
	notifications := notify.NewCoordinator(platform.NewConsoleNotifier(out), store, env.logger)
	sounds := audio.Open(platform.NewBell(out), store, env.logger)
	defer sounds.Close()

	controller := app.New(app.Options{
		Settings: store,
		Sounds:   sounds,
		Notifier: notifications,
		Journal:  journal,
		Logger:   env.logger,
		Timer:    timer.Config{TickInterval: options.Tick},
	})
	defer controller.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := controller.Engine().Subscribe(256)
	group, groupCtx := errgroup.WithContext(runCtx)
	group.Go(func() error {
		return store.Watch(groupCtx)
	})
	group.Go(func() error {
		reporter := &reporter{engine: controller.Engine(), out: out, cycles: options.Cycles}
		if reporter.run(groupCtx, events) {
			cancel()
		}
		return nil
	})

	notifications.RequestPermission(runCtx)
	controller.SetNote(options.Note)
	env.logger.Info().Str("settings", store.Path()).Int("cycles", options.Cycles).Msg("headless run started")
	controller.Start()

	if err := group.Wait(); err != nil {
		return fmt.Errorf("headless run: %w", err)
	}
	env.logger.Info().Msg("headless run stopped")
	return nil
}

// reporter prints state changes and the countdown once a minute.
type reporter struct {
	engine *timer.Engine
	out    io.Writer
	cycles int
}

// run returns true when the requested number of pomodoros has been reached.
func (reporter *reporter) run(ctx context.Context, events <-chan timer.Event) bool {
	poll := time.NewTicker(250 * time.Millisecond)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			reporter.print(event)
			if reporter.done(event.Snapshot) {
				return true
			}
		case <-poll.C:
			if reporter.done(reporter.engine.Snapshot()) {
				return true
			}
		}
	}
}

func (reporter *reporter) print(event timer.Event) {
	switch event.Type {
	case timer.EventTick:
		if event.Snapshot.TimeLeft%60 != 0 {
			return
		}
		fmt.Fprintln(reporter.out, timerview.Status(event.Snapshot))
	case timer.EventComplete:
		fmt.Fprintf(reporter.out, "%s finished, %s\n", event.Completion.Ended.Label(), timerview.CounterText(event.Completion.CompletedPomodoros))
		fmt.Fprintln(reporter.out, timerview.Status(event.Snapshot))
	default:
		fmt.Fprintln(reporter.out, timerview.Status(event.Snapshot))
	}
}

func (reporter *reporter) done(snapshot timer.Snapshot) bool {
	return reporter.cycles > 0 && snapshot.CompletedPomodoros >= reporter.cycles
}
