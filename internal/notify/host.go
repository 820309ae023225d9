// Package notify coordinates best-effort desktop notifications for finished intervals.
package notify

import (
	"context"
	"errors"
)

// ErrUnsupported indicates the host cannot display notifications.
var ErrUnsupported = errors.New("notifications unsupported")

// Permission is the host's notification permission state.
type Permission int

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

// String returns the permission name.
func (permission Permission) String() string {
	switch permission {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

// Message is a single notification.
type Message struct {
	Title string
	Body  string
	Icon  string
}

// Host is the platform notification capability.
type Host interface {
	Supported() bool
	Permission() Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Display(message Message) error
}
