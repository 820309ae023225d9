package desktop

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"

	"focusclock/internal/notify"
)

// Notifier is a notify.Host backed by the fyne application. fyne has no permission API,
// so the first request is treated as the user's consent. Icons are not forwarded.
type Notifier struct {
	mu         sync.Mutex
	app        fyne.App
	permission notify.Permission
	deliver    func(func())
}

// NewNotifier returns a Notifier for app. A nil app is unsupported.
func NewNotifier(app fyne.App) *Notifier {
	return &Notifier{app: app, deliver: fyne.Do}
}

// Supported reports whether an application is attached.
func (notifier *Notifier) Supported() bool {
	return notifier.app != nil
}

// Permission returns the current permission.
func (notifier *Notifier) Permission() notify.Permission {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.permission
}

// RequestPermission grants notifications for the rest of the session.
func (notifier *Notifier) RequestPermission(ctx context.Context) (notify.Permission, error) {
	if err := ctx.Err(); err != nil {
		return notify.PermissionDefault, err
	}
	if !notifier.Supported() {
		return notify.PermissionDenied, notify.ErrUnsupported
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.permission = notify.PermissionGranted
	return notifier.permission, nil
}

// Display sends message as a system notification.
func (notifier *Notifier) Display(message notify.Message) error {
	if !notifier.Supported() {
		return notify.ErrUnsupported
	}
	notification := fyne.NewNotification(message.Title, message.Body)
	notifier.deliver(func() {
		notifier.app.SendNotification(notification)
	})
	return nil
}
