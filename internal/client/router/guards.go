// Package router maps portal paths to views and runs the navigation guards.
package router

// Session is the read-only view of the client session the guards consult.
type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Decision is a guard's verdict: allow, or go to Redirect instead.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard is a synchronous predicate over the current session.
type Guard func(Session) Decision

var allow = Decision{Allow: true}

// AuthGuard admits signed-in members and sends everyone else to login.
func AuthGuard(s Session) Decision {
	if s.IsAuthenticated() {
		return allow
	}
	return Decision{Redirect: "/login"}
}

// GuestGuard keeps signed-in members away from the login, register and
// password reset pages.
func GuestGuard(s Session) Decision {
	if !s.IsAuthenticated() {
		return allow
	}
	return Decision{Redirect: "/dashboard"}
}

// AdminGuard admits administrators and sends everyone else to the
// dashboard overview.
func AdminGuard(s Session) Decision {
	if s.IsAuthenticated() && s.IsAdmin() {
		return allow
	}
	return Decision{Redirect: "/dashboard/overview"}
}
