// Package desktop runs the fyne tray application.
package desktop

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	fynedesktop "fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"

	"focusclock/internal/app"
	"focusclock/internal/audio"
	"focusclock/internal/core/model"
	"focusclock/internal/core/timer"
	"focusclock/internal/history"
	"focusclock/internal/notify"
	"focusclock/internal/platform"
	"focusclock/internal/storage"
	"focusclock/internal/ui/preferences"
	"focusclock/internal/ui/timerview"
	"focusclock/internal/ui/tray"
	"focusclock/resources"
)

// ErrNoTray is returned when the driver cannot host a system tray.
var ErrNoTray = errors.New("system tray unsupported")

const appID = "io.focusclock.app"

// Options contains what the shell needs from the command line.
type Options struct {
	AppName string
	Store   *storage.Store
	Journal *history.Journal
	Logger  zerolog.Logger
}

// Run starts the tray application and blocks until the user quits or ctx ends.
func Run(ctx context.Context, options Options) error {
	guard, err := platform.AcquireSingleInstance(options.AppName)
	if err != nil {
		return fmt.Errorf("start desktop: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	logger := options.Logger.With().Str("component", "desktop").Logger()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon("app.svg"))
	desktopApp, ok := fyneApp.(fynedesktop.App)
	if !ok {
		return fmt.Errorf("start desktop: %w", ErrNoTray)
	}

	notifications := notify.NewCoordinator(NewNotifier(fyneApp), options.Store, options.Logger)
	sounds := audio.Open(platform.NewSpeaker(), options.Store, options.Logger)
	defer sounds.Close()

	controller := app.New(app.Options{
		Settings: options.Store,
		Sounds:   sounds,
		Notifier: notifications,
		Journal:  options.Journal,
		Logger:   options.Logger,
	})
	defer controller.Close()
	engine := controller.Engine()

	view := timerview.New(fyneApp, controller)
	prefs := preferences.New(fyneApp, options.Store.Current(), options.Store.Update)
	unsubscribe := options.Store.Subscribe(func(settings model.Settings) {
		fyne.Do(func() {
			prefs.UpdateSettings(settings)
		})
	})
	defer unsubscribe()

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnShowTimer:   view.Show,
		OnPreferences: prefs.Show,
		OnToggle:      controller.Toggle,
		OnSkip:        controller.Skip,
		OnReset:       controller.Reset,
		OnMode:        controller.SetMode,
		OnQuit:        fyneApp.Quit,
	}, resources.MustIcon("work.svg"), resources.MustIcon("break.svg"))

	events := engine.Subscribe(32)
	go func() {
		for event := range events {
			render(view, trayManager, event.Snapshot)
			if event.Type == timer.EventComplete && event.Completion.Ended == model.ModeWork {
				view.ClearNote()
			}
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := options.Store.Watch(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn().Err(err).Msg("watch settings")
		}
	}()
	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(fyneApp.Quit)
		case <-stopped:
		}
	}()

	fyneApp.Lifecycle().SetOnStarted(func() {
		render(view, trayManager, engine.Snapshot())
		go notifications.RequestPermission(runCtx)
	})

	logger.Info().Str("settings", options.Store.Path()).Msg("desktop started")
	view.Show()
	fyneApp.Run()
	close(stopped)
	logger.Info().Msg("desktop stopped")
	return nil
}

func render(view *timerview.Window, trayManager *tray.Manager, snapshot timer.Snapshot) {
	view.Render(snapshot)
	fyne.Do(func() {
		trayManager.Update(snapshot)
	})
}
