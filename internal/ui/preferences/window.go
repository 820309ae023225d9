package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"focusclock/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      model.Settings
	onSave        func(model.Settings) error
	work          *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	interval      *widget.Entry
	autoBreaks    *widget.Check
	autoPomodoros *widget.Check
	sound         *widget.Check
	notifications *widget.Check
	volume        *widget.Slider
}

// New creates a preferences window. onSave receives the edited settings; an error keeps
// the window open and is shown to the user.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings) error) *Window {
	window := app.NewWindow("focusclock Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		work:          widget.NewEntry(),
		shortBreak:    widget.NewEntry(),
		longBreak:     widget.NewEntry(),
		interval:      widget.NewEntry(),
		autoBreaks:    widget.NewCheck("Start breaks automatically", nil),
		autoPomodoros: widget.NewCheck("Start focus automatically", nil),
		sound:         widget.NewCheck("Play sounds", nil),
		notifications: widget.NewCheck("Show notifications", nil),
		volume:        widget.NewSlider(0, 1),
	}
	prefs.volume.Step = 0.05

	fields := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus length"), prefs.work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break length"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break length"), prefs.longBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break every"), prefs.interval, widget.NewLabel("pomodoros")),
		widget.NewLabelWithStyle("Behavior", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.autoBreaks,
		prefs.autoPomodoros,
		prefs.notifications,
		prefs.sound,
		widget.NewLabel("Volume"),
		prefs.volume,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, fields))
	window.Resize(fyne.NewSize(420, 460))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	values := formFromSettings(settings)
	prefs.work.SetText(values.work)
	prefs.shortBreak.SetText(values.shortBreak)
	prefs.longBreak.SetText(values.longBreak)
	prefs.interval.SetText(values.interval)
	prefs.autoBreaks.SetChecked(values.autoBreaks)
	prefs.autoPomodoros.SetChecked(values.autoPomodoros)
	prefs.sound.SetChecked(values.sound)
	prefs.notifications.SetChecked(values.notifications)
	prefs.volume.SetValue(values.volume)
}

func (prefs *Window) currentForm() form {
	return form{
		work:          prefs.work.Text,
		shortBreak:    prefs.shortBreak.Text,
		longBreak:     prefs.longBreak.Text,
		interval:      prefs.interval.Text,
		autoBreaks:    prefs.autoBreaks.Checked,
		autoPomodoros: prefs.autoPomodoros.Checked,
		sound:         prefs.sound.Checked,
		notifications: prefs.notifications.Checked,
		volume:        prefs.volume.Value,
	}
}

func (prefs *Window) handleSave() {
	settings, err := prefs.currentForm().apply(prefs.settings)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.settings = settings
	prefs.window.Hide()
}
