package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minGuardPort = 20000
	maxGuardPort = 39999
)

// InstanceGuard holds the single-instance lock for the desktop shell.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds a localhost port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := GuardAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", address, ErrAlreadyRunning)
	}
	return &InstanceGuard{listener: listener}, nil
}

// GuardAddress returns the address an instance of appName locks.
func GuardAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := uint32(maxGuardPort - minGuardPort + 1)
	return fmt.Sprintf("127.0.0.1:%d", minGuardPort+int(hash.Sum32()%span))
}

// Release frees the lock. It is safe on a nil guard and after a previous release.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	listener := guard.listener
	guard.listener = nil
	return listener.Close()
}
