// Package session owns the client's authentication state: whether the member
// is signed in, who they are, and the persisted token and user snapshot.
//
// The state machine has three states. Unauthenticated is initial. Verifying
// is entered at startup when a token and snapshot were persisted, and left
// once the server confirms (Authenticated) or rejects, fails or times out
// (Unauthenticated, persisted data cleared).
package session

// State is the session's authentication state.
type State int

const (
	Unauthenticated State = iota
	Verifying
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Navigation targets.
const (
	PathDashboard = "/dashboard"
	PathProfile   = "/dashboard/profile"
	PathLogin     = "/login"
)

// Navigator moves the client to a route.
type Navigator interface {
	Navigate(path string) error
}

// Result is what login and register report back to a form.
type Result struct {
	Success bool
	Message string
}
