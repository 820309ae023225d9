package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"focusclock/internal/core/model"
	"focusclock/internal/core/timer"
	"focusclock/internal/ui/timerview"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowTimer   func()
	OnPreferences func()
	OnToggle      func()
	OnSkip        func()
	OnReset       func()
	OnMode        func(model.Mode)
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	modeItems  map[model.Mode]*fyne.MenuItem
	menu       *fyne.Menu
	icons      map[bool]fyne.Resource
	breakShown *bool
}

// New creates a tray manager with the provided callbacks. workIcon and breakIcon are
// swapped in as the tray icon when the mode changes.
func New(app desktop.App, callbacks Callbacks, workIcon, breakIcon fyne.Resource) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		modeItems: map[model.Mode]*fyne.MenuItem{},
		icons:     map[bool]fyne.Resource{false: workIcon, true: breakIcon},
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(timerview.ToggleLabel(false), manager.call(callbacks.OnToggle))

	modeMenu := fyne.NewMenu("")
	for _, mode := range model.Modes() {
		item := fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnMode != nil {
				manager.callbacks.OnMode(mode)
			}
		})
		manager.modeItems[mode] = item
		modeMenu.Items = append(modeMenu.Items, item)
	}
	switchItem := fyne.NewMenuItem("Switch to", nil)
	switchItem.ChildMenu = modeMenu

	manager.menu = fyne.NewMenu("focusclock",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", manager.call(callbacks.OnShowTimer)),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Skip", manager.call(callbacks.OnSkip)),
		fyne.NewMenuItem("Reset", manager.call(callbacks.OnReset)),
		switchItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", manager.call(callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", manager.call(callbacks.OnQuit)),
	)
	if app != nil {
		app.SetSystemTrayMenu(manager.menu)
	}
	return manager
}

// Update reflects snapshot in the menu and icon. Must run on the fyne goroutine.
func (manager *Manager) Update(snapshot timer.Snapshot) {
	manager.statusItem.Label = "Status: " + timerview.Status(snapshot)
	manager.toggleItem.Label = timerview.ToggleLabel(snapshot.Running)
	for mode, item := range manager.modeItems {
		item.Checked = mode == snapshot.Mode
	}
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(manager.menu)

	inBreak := snapshot.Mode.IsBreak()
	if manager.breakShown == nil || *manager.breakShown != inBreak {
		if icon := manager.icons[inBreak]; icon != nil {
			manager.app.SetSystemTrayIcon(icon)
		}
		manager.breakShown = &inBreak
	}
}

func (manager *Manager) call(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
