package router

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/legalchicks/lcen-portal/internal/client/observable"
)

var (
	ErrNoRoute      = errors.New("no such route")
	ErrRedirectLoop = errors.New("too many redirects")
)

const maxRedirectHops = 8

// View names the screens of the portal.
type View string

const (
	ViewLogin          View = "login"
	ViewRegister       View = "register"
	ViewForgotPassword View = "forgot-password"
	ViewOverview       View = "overview"
	ViewAnalytics      View = "analytics"
	ViewBusiness       View = "business"
	ViewProfile        View = "profile"
	ViewDirectory      View = "directory"
	ViewMembership     View = "membership"
	ViewSupplies       View = "supplies"
	ViewSettings       View = "settings"
	ViewAdminProfile   View = "admin-profile"
)

// Route is one entry of the route table. A route with RedirectTo renders
// nothing and forwards before any guard runs.
type Route struct {
	Path       string
	View       View
	Guards     []Guard
	RedirectTo string
}

// DefaultRoutes is the portal's route table.
func DefaultRoutes() []Route {
	guest := []Guard{GuestGuard}
	auth := []Guard{AuthGuard}
	return []Route{
		{Path: "login", View: ViewLogin, Guards: guest},
		{Path: "register", View: ViewRegister, Guards: guest},
		{Path: "forgot-password", View: ViewForgotPassword, Guards: guest},

		{Path: "dashboard", RedirectTo: "/dashboard/overview"},
		{Path: "dashboard/overview", View: ViewOverview, Guards: auth},
		{Path: "dashboard/analytics", View: ViewAnalytics, Guards: auth},
		{Path: "dashboard/business", View: ViewBusiness, Guards: auth},
		{Path: "dashboard/profile", View: ViewProfile, Guards: auth},
		{Path: "dashboard/directory", View: ViewDirectory, Guards: auth},
		{Path: "dashboard/membership", View: ViewMembership, Guards: auth},
		{Path: "dashboard/supplies", View: ViewSupplies, Guards: auth},
		{Path: "dashboard/settings", View: ViewSettings, Guards: auth},
		{Path: "dashboard/admin/profile", View: ViewAdminProfile, Guards: []Guard{AuthGuard, AdminGuard}},

		{Path: "", RedirectTo: "/dashboard"},
	}
}

// Router resolves paths against a route table and keeps the current route.
// It implements session.Navigator.
type Router struct {
	session Session
	routes  map[string]Route

	mu      sync.Mutex
	current *observable.Value[string]
}

func New(s Session, routes []Route) *Router {
	table := make(map[string]Route, len(routes))
	for _, rt := range routes {
		table[rt.Path] = rt
	}
	return &Router{session: s, routes: table, current: observable.NewValue("")}
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.Trim(path, "/")
}

// Resolve follows redirects and guards from path and returns the route the
// navigation ends on. It does not change the current route.
func (r *Router) Resolve(path string) (string, Route, error) {
	p := normalize(path)
	for range maxRedirectHops {
		rt, ok := r.routes[p]
		if !ok {
			return "", Route{}, fmt.Errorf("%w: /%s", ErrNoRoute, p)
		}
		if rt.RedirectTo != "" {
			p = normalize(rt.RedirectTo)
			continue
		}
		next, redirected := r.check(rt)
		if !redirected {
			return "/" + p, rt, nil
		}
		p = normalize(next)
	}
	return "", Route{}, fmt.Errorf("%w: from %s", ErrRedirectLoop, path)
}

func (r *Router) check(rt Route) (string, bool) {
	for _, g := range rt.Guards {
		if d := g(r.session); !d.Allow {
			return d.Redirect, true
		}
	}
	return "", false
}

// Navigate resolves path and makes the result the current route.
func (r *Router) Navigate(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	final, _, err := r.Resolve(path)
	if err != nil {
		return err
	}
	r.current.Set(final)
	return nil
}

// Current returns the current path, "" before the first navigation.
func (r *Router) Current() string { return r.current.Get() }

// CurrentView returns the view of the current path.
func (r *Router) CurrentView() View {
	return r.routes[normalize(r.current.Get())].View
}

// CurrentValue exposes the observable current path.
func (r *Router) CurrentValue() *observable.Value[string] { return r.current }
