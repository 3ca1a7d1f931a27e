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

// InstanceGuard holds the single-instance lock for the process lifetime.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance binds a localhost port derived from the app name.
// A second process computing the same port fails with ErrAlreadyRunning.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := guardAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Release frees the lock. Safe on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	listener := guard.listener
	guard.listener = nil
	return listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func guardAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", guardPort(appName))
}

func guardPort(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := uint32(maxGuardPort - minGuardPort + 1)
	return minGuardPort + int(hash.Sum32()%span)
}
