//go:build windows

package instance

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// acquire creates a named mutex. ERROR_ALREADY_EXISTS means a live process
// holds it; the OS abandons the mutex when that process dies.
func acquire(name string) (Role, func(), error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return RoleSecondary, nil, fmt.Errorf("%w: bad coordination name: %v", ErrCoordinationUnavailable, err)
	}

	handle, err := windows.CreateMutex(nil, false, namePtr)
	if err == windows.ERROR_ALREADY_EXISTS {
		if handle != 0 {
			_ = windows.CloseHandle(handle)
		}
		return RoleSecondary, func() {}, nil
	}
	if err != nil {
		return RoleSecondary, nil, fmt.Errorf("%w: CreateMutex: %v", ErrCoordinationUnavailable, err)
	}

	// Keep the handle for the process lifetime; closing it releases the role.
	return RolePrimary, func() { _ = windows.CloseHandle(handle) }, nil
}
