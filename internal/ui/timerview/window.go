package timerview

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"focusclock/internal/core/model"
	"focusclock/internal/core/timer"
	"focusclock/resources"
)

// Actions are the user operations the window triggers.
type Actions interface {
	Toggle()
	Reset()
	Skip()
	SetMode(mode model.Mode)
	SetNote(note string)
}

var (
	workColor  = color.NRGBA{R: 219, G: 82, B: 77, A: 255}
	breakColor = color.NRGBA{R: 70, G: 142, B: 145, A: 255}
)

// Window shows the countdown with its controls.
type Window struct {
	window       fyne.Window
	actions      Actions
	modeIcon     *canvas.Image
	modeLabel    *canvas.Text
	timeLabel    *canvas.Text
	progress     *widget.ProgressBar
	counterLabel *widget.Label
	modeSelect   *widget.RadioGroup
	toggleButton *widget.Button
	noteEntry    *widget.Entry
	mode         model.Mode
	rendering    bool
}

// New creates the timer window.
func New(app fyne.App, actions Actions) *Window {
	window := app.NewWindow("focusclock")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:       window,
		actions:      actions,
		modeIcon:     canvas.NewImageFromResource(resources.MustIcon("work.svg")),
		modeLabel:    canvas.NewText(model.ModeWork.Label(), workColor),
		timeLabel:    canvas.NewText("--:--", workColor),
		progress:     widget.NewProgressBar(),
		counterLabel: widget.NewLabel(CounterText(0)),
		noteEntry:    widget.NewEntry(),
		mode:         model.ModeWork,
	}
	view.modeIcon.FillMode = canvas.ImageFillContain
	view.modeIcon.SetMinSize(fyne.NewSize(32, 32))

	view.modeLabel.TextStyle = fyne.TextStyle{Bold: true}
	view.modeLabel.TextSize = 18
	view.modeLabel.Alignment = fyne.TextAlignCenter

	view.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.timeLabel.TextSize = 56
	view.timeLabel.Alignment = fyne.TextAlignCenter

	view.progress.Min = 0
	view.progress.Max = 100

	labels := make([]string, 0, len(model.Modes()))
	for _, mode := range model.Modes() {
		labels = append(labels, mode.Label())
	}
	view.modeSelect = widget.NewRadioGroup(labels, view.handleModeSelected)
	view.modeSelect.Horizontal = true
	view.modeSelect.Required = true

	view.noteEntry.SetPlaceHolder("What are you focusing on?")
	view.noteEntry.OnChanged = func(note string) {
		if view.actions != nil {
			view.actions.SetNote(note)
		}
	}

	view.toggleButton = widget.NewButton(ToggleLabel(false), view.trigger(func(actions Actions) { actions.Toggle() }))
	resetButton := widget.NewButton("Reset", view.trigger(func(actions Actions) { actions.Reset() }))
	skipButton := widget.NewButton("Skip", view.trigger(func(actions Actions) { actions.Skip() }))

	header := container.NewHBox(layout.NewSpacer(), view.modeIcon, view.modeLabel, layout.NewSpacer())
	controls := container.NewHBox(layout.NewSpacer(), view.toggleButton, resetButton, skipButton, layout.NewSpacer())
	content := container.NewVBox(
		container.NewCenter(view.modeSelect),
		header,
		view.timeLabel,
		view.progress,
		controls,
		view.counterLabel,
		view.noteEntry,
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(380, 340))
	window.SetCloseIntercept(window.Hide)
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window.
func (view *Window) Hide() {
	view.window.Hide()
}

// Render updates every widget from snapshot. Safe to call from any goroutine.
func (view *Window) Render(snapshot timer.Snapshot) {
	fyne.Do(func() {
		view.renderUnsafe(snapshot)
	})
}

// ClearNote empties the note entry.
func (view *Window) ClearNote() {
	fyne.Do(func() {
		view.noteEntry.SetText("")
	})
}

func (view *Window) renderUnsafe(snapshot timer.Snapshot) {
	tint := workColor
	icon := "work.svg"
	if snapshot.Mode.IsBreak() {
		tint = breakColor
		icon = "break.svg"
	}

	view.modeIcon.Resource = resources.MustIcon(icon)
	view.modeIcon.Refresh()

	view.modeLabel.Text = snapshot.Mode.Label()
	view.modeLabel.Color = tint
	view.modeLabel.Refresh()

	view.timeLabel.Text = FormatClock(snapshot.TimeLeft)
	view.timeLabel.Color = tint
	view.timeLabel.Refresh()

	view.progress.SetValue(snapshot.Progress)
	view.counterLabel.SetText(CounterText(snapshot.CompletedPomodoros))
	view.toggleButton.SetText(ToggleLabel(snapshot.Running))
	view.window.SetTitle("focusclock: " + Status(snapshot))

	view.mode = snapshot.Mode
	view.selectModeUnsafe(snapshot.Mode)
}

func (view *Window) selectModeUnsafe(mode model.Mode) {
	view.rendering = true
	view.modeSelect.SetSelected(mode.Label())
	view.rendering = false
}

func (view *Window) handleModeSelected(label string) {
	if view.rendering {
		return
	}
	mode, switchTo := selectedMode(label, view.mode)
	if !switchTo {
		view.selectModeUnsafe(mode)
		return
	}
	if view.actions != nil {
		view.actions.SetMode(mode)
	}
}

func (view *Window) trigger(action func(Actions)) func() {
	return func() {
		if view.actions != nil {
			action(view.actions)
		}
	}
}
