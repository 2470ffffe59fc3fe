// Package instance decides whether this process is the primary
// (session-owning) instance or a secondary (handoff-and-exit) launch.
//
// The decision is made once, at startup, by attempting to create a named,
// process-independent exclusivity marker: a named mutex on Windows, an
// exclusive loopback port bind elsewhere. Either marker is abandoned by the
// OS when the holder dies, so a crashed primary never wedges the role.
package instance

import (
	"errors"
	"sync"
)

type Role int

const (
	// RolePrimary owns the user-visible session.
	RolePrimary Role = iota + 1
	// RoleSecondary hands off its activation payload and exits.
	RoleSecondary
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// ErrCoordinationUnavailable reports that the marker could not be created
// for a reason other than "already held" (permissions, exhausted handles).
// The caller decides the safe default; duplicate sessions are worse than none.
var ErrCoordinationUnavailable = errors.New("instance coordination unavailable")

// ReleaseFunc releases the marker. Safe to call more than once, and safe to
// defer on every exit path; the marker is also abandoned on process death.
type ReleaseFunc func()

// Acquire attempts to take the exclusivity marker for name. It never blocks
// and never retries: the first creator wins for its whole lifetime.
func Acquire(name string) (Role, ReleaseFunc, error) {
	role, release, err := acquire(name)
	if err != nil {
		return RoleSecondary, func() {}, err
	}
	var once sync.Once
	return role, func() { once.Do(release) }, nil
}
