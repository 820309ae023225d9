package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"focusclock/internal/core/model"
)

// Icon names shared with the resources package.
const (
	IconWork  = "work"
	IconBreak = "break"
)

// SettingsSource provides the live notification toggle.
type SettingsSource interface {
	Current() model.Settings
}

type capability int

const (
	capabilityUnknown capability = iota
	capabilityRequesting
	capabilityGranted
	capabilityDenied
	capabilityUnsupported
)

// Coordinator gates notifications on settings, host support and permission.
type Coordinator struct {
	mu       sync.Mutex
	host     Host
	settings SettingsSource
	logger   zerolog.Logger
	state    capability
	pending  chan struct{}
}

// NewCoordinator creates a Coordinator. A nil host behaves as an unsupported one.
func NewCoordinator(host Host, settings SettingsSource, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		host:     host,
		settings: settings,
		logger:   logger.With().Str("component", "notify").Logger(),
	}
}

// MessageFor returns the notification shown when mode ends.
func MessageFor(ended model.Mode) Message {
	if ended == model.ModeWork {
		return Message{
			Title: "Work session complete",
			Body:  "Time for a break.",
			Icon:  IconWork,
		}
	}
	return Message{
		Title: "Break is over",
		Body:  "Time to focus.",
		Icon:  IconBreak,
	}
}

// RequestPermission asks the host for permission at most once per default state.
// Granted and denied are answered without prompting; concurrent callers share one prompt.
func (coordinator *Coordinator) RequestPermission(ctx context.Context) bool {
	for {
		coordinator.mu.Lock()
		state := coordinator.refreshLocked()
		switch state {
		case capabilityUnsupported, capabilityDenied:
			coordinator.mu.Unlock()
			return false
		case capabilityGranted:
			coordinator.mu.Unlock()
			return true
		case capabilityRequesting:
			pending := coordinator.pending
			coordinator.mu.Unlock()
			select {
			case <-pending:
				continue
			case <-ctx.Done():
				return false
			}
		}

		coordinator.state = capabilityRequesting
		pending := make(chan struct{})
		coordinator.pending = pending
		coordinator.mu.Unlock()

		permission, err := coordinator.host.RequestPermission(ctx)

		coordinator.mu.Lock()
		switch {
		case err != nil:
			coordinator.logger.Warn().Err(err).Msg("request notification permission")
			coordinator.state = capabilityUnknown
		case permission == PermissionGranted:
			coordinator.state = capabilityGranted
		case permission == PermissionDenied:
			coordinator.state = capabilityDenied
		default:
			coordinator.state = capabilityUnknown
		}
		granted := coordinator.state == capabilityGranted
		close(pending)
		coordinator.pending = nil
		coordinator.mu.Unlock()

		coordinator.logger.Debug().Str("permission", permission.String()).Msg("notification permission answered")
		return granted
	}
}

// Show displays the notification for the ended mode when enabled and permitted.
// Host failures are logged and dropped.
func (coordinator *Coordinator) Show(ended model.Mode) {
	if !coordinator.settings.Current().NotificationsEnabled {
		return
	}

	coordinator.mu.Lock()
	state := coordinator.refreshLocked()
	coordinator.mu.Unlock()
	if state != capabilityGranted {
		return
	}

	message := MessageFor(ended)
	if err := coordinator.host.Display(message); err != nil {
		coordinator.logger.Warn().Err(err).Str("mode", string(ended)).Msg("display notification")
		return
	}
	coordinator.logger.Debug().Str("title", message.Title).Msg("notification shown")
}

// refreshLocked syncs the cached state with the host, which may change permission externally.
func (coordinator *Coordinator) refreshLocked() capability {
	if coordinator.host == nil || !coordinator.host.Supported() {
		coordinator.state = capabilityUnsupported
		return coordinator.state
	}
	if coordinator.state == capabilityRequesting {
		return coordinator.state
	}
	switch coordinator.host.Permission() {
	case PermissionGranted:
		coordinator.state = capabilityGranted
	case PermissionDenied:
		coordinator.state = capabilityDenied
	default:
		coordinator.state = capabilityUnknown
	}
	return coordinator.state
}
