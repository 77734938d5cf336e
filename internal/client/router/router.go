package router

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/clinicdesk/internal/client/session"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/gorilla/mux"
)

// MaxRedirects bounds the redirect chain of a single navigation.
const MaxRedirects = 10

var (
	ErrRedirectLoop = errors.New("too many redirects")
	ErrNoRoute      = errors.New("no route matches")
)

// SessionSource provides the session the guard evaluates.
type SessionSource interface {
	Snapshot() session.Session
}

type Router struct {
	mux      *mux.Router
	routes   map[*mux.Route]Route
	catchAll *Route
	guard    *Guard
	sessions SessionSource
	log      logging.Logger

	mu      sync.RWMutex
	current Location
}

func New(routes []Route, guard *Guard, sessions SessionSource, log logging.Logger) *Router {
	r := &Router{
		mux:      mux.NewRouter().UseEncodedPath(),
		routes:   make(map[*mux.Route]Route, len(routes)),
		guard:    guard,
		sessions: sessions,
		log:      log.With("component", "router"),
	}
	for _, rt := range routes {
		if rt.Path == CatchAllPath {
			catchAll := rt
			r.catchAll = &catchAll
			continue
		}
		mr := r.mux.Path(rt.Path)
		if rt.Name != "" {
			mr = mr.Name(rt.Name)
		}
		if err := mr.GetError(); err != nil {
			r.log.Error(context.Background(), "route skipped", "path", rt.Path, "error", err)
			continue
		}
		r.routes[mr] = rt
	}
	return r
}

// Routes returns the table without the catch-all, in registration order.
func (r *Router) Routes() []Route {
	var out []Route
	_ = r.mux.Walk(func(mr *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if rt, ok := r.routes[mr]; ok {
			out = append(out, rt)
		}
		return nil
	})
	return out
}

// Current returns the last committed location.
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc := r.current
	loc.Params = maps.Clone(loc.Params)
	return loc
}

// Resolve matches path against the table. Unmatched paths resolve to the
// catch-all route when there is one.
func (r *Router) Resolve(path string) (Location, bool) {
	path = CleanPath(path)
	if loc, ok := r.match(path); ok {
		return loc, true
	}
	if r.catchAll != nil {
		return Location{Path: path, Route: *r.catchAll, Params: map[string]string{}}, true
	}
	return Location{}, false
}

func (r *Router) match(path string) (Location, bool) {
	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return Location{}, false
	}
	var m mux.RouteMatch
	if !r.mux.Match(req, &m) {
		return Location{}, false
	}
	rt, ok := r.routes[m.Route]
	if !ok {
		return Location{}, false
	}

	// The router matches the encoded path, so vars arrive escaped.
	params := make(map[string]string, len(m.Vars))
	for k, v := range m.Vars {
		un, err := url.PathUnescape(v)
		if err != nil {
			return Location{}, false
		}
		params[k] = un
	}
	return Location{Path: path, Route: rt, Params: params}, true
}

// Navigate resolves path, runs the guard and follows redirects until a
// location is allowed, then commits it as current.
func (r *Router) Navigate(ctx context.Context, path string) (Location, error) {
	target := path
	for hop := 0; hop <= MaxRedirects; hop++ {
		loc, ok := r.Resolve(target)
		if !ok {
			return Location{}, fmt.Errorf("%w: %s", ErrNoRoute, target)
		}
		s := r.sessions.Snapshot()

		if next := r.staticRedirect(loc, s); next != "" {
			target = next
			continue
		}

		d := r.guard.Check(ctx, loc, s)
		if !d.Allowed() {
			r.log.Info(ctx, "navigation redirected", "from", loc.Path, "to", d.Redirect, "reason", d.Reason)
			target = d.Redirect
			continue
		}

		r.mu.Lock()
		r.current = loc
		r.mu.Unlock()
		r.log.Debug(ctx, "navigated", "path", loc.Path, "route", loc.Route.Name)
		return loc, nil
	}
	r.log.Error(ctx, "redirect loop", "path", path)
	return Location{}, fmt.Errorf("%w: %s", ErrRedirectLoop, path)
}

// staticRedirect handles table redirects and the catch-all, both of which
// are resolved before the guard sees the target.
func (r *Router) staticRedirect(loc Location, s session.Session) string {
	if loc.Route.Path == CatchAllPath {
		if s.IsAuthenticated {
			return DashboardPath
		}
		return LoginPath
	}
	return loc.Route.Redirect
}

// Push navigates and discards the location. It lets the API client send
// the user to the login screen.
func (r *Router) Push(ctx context.Context, path string) error {
	_, err := r.Navigate(ctx, path)
	return err
}

// Reachable lists parameterless routes s may open, in table order.
// Redirect-only routes and the login page are left out.
func (r *Router) Reachable(s session.Session) []Route {
	var out []Route
	for _, rt := range r.Routes() {
		if rt.HasParams() || rt.Redirect != "" || rt.Path == LoginPath {
			continue
		}
		if rt.RequiresAuth && !s.IsAuthenticated {
			continue
		}
		if rt.AllowedRoles != nil && !s.HasAnyRole(rt.AllowedRoles) {
			continue
		}
		out = append(out, rt)
	}
	return out
}
