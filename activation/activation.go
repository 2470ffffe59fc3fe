// Package activation produces the deep-link URL, if any, that triggered the
// current process launch.
package activation

import "strings"

// Kind describes why the OS started the process.
type Kind int

const (
	// KindLaunch is a plain user launch with no payload.
	KindLaunch Kind = iota + 1
	// KindProtocol is a deep-link (registered URI scheme) activation.
	KindProtocol
)

// Event is the structured activation record supplied by the OS, when the
// platform provides one. It carries a pre-parsed URI and is consulted before
// any command-line scanning.
type Event struct {
	Kind Kind
	URI  string
}

// Extract returns the deep-link URL for this launch. Two sources are tried
// in fixed priority order: the structured activation event, then a literal
// case-sensitive scan of the command line for the scheme prefix.
//
// A launch without a deep link is the normal case, reported as found=false.
// Malformed or partially populated events degrade to the command-line scan
// rather than erroring out.
func Extract(scheme string, event *Event, args []string) (url string, found bool) {
	if scheme == "" {
		return "", false
	}

	if event != nil && event.Kind == KindProtocol {
		if strings.HasPrefix(event.URI, scheme) {
			return event.URI, true
		}
		// Protocol event without a usable URI: fall through to the args scan.
	}

	for _, arg := range args {
		if i := strings.Index(arg, scheme); i >= 0 {
			return arg[i:], true
		}
	}

	return "", false
}
