package platform

import (
	"context"
	"fmt"
	"io"
	"sync"

	"focusclock/internal/notify"
)

// ConsoleNotifier displays notifications as lines on a writer.
type ConsoleNotifier struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewConsoleNotifier returns a notifier writing to writer.
func NewConsoleNotifier(writer io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{writer: writer}
}

// Supported reports whether there is somewhere to write.
func (notifier *ConsoleNotifier) Supported() bool {
	return notifier.writer != nil
}

// Permission is always granted on a console.
func (notifier *ConsoleNotifier) Permission() notify.Permission {
	return notify.PermissionGranted
}

// RequestPermission grants without prompting.
func (notifier *ConsoleNotifier) RequestPermission(context.Context) (notify.Permission, error) {
	return notify.PermissionGranted, nil
}

// Display writes the message.
func (notifier *ConsoleNotifier) Display(message notify.Message) error {
	if notifier.writer == nil {
		return notify.ErrUnsupported
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if _, err := fmt.Fprintf(notifier.writer, "%s: %s\n", message.Title, message.Body); err != nil {
		return fmt.Errorf("display notification: %w", err)
	}
	return nil
}
