package router

import (
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

const (
	LoginPath     = "/login"
	HomePath      = "/"
	DashboardPath = "/dashboard"

	// CatchAllPath marks the route used when nothing else matches.
	CatchAllPath = "*"
)

// Route describes one navigable screen.
type Route struct {
	// Path is a mux template; "{name}" segments become params.
	Path   string
	Name   string
	Screen string
	// Resource is the API path template holding the screen's data.
	// It may reference the same "{name}" params as Path.
	Resource string
	// Redirect sends the navigation elsewhere before the guard runs.
	Redirect     string
	RequiresAuth bool
	// AllowedRoles nil means any authenticated user.
	AllowedRoles []string
}

// HasParams reports whether the route path contains "{name}" segments.
func (r Route) HasParams() bool {
	return strings.Contains(r.Path, "{")
}

// Location is a resolved navigation target.
type Location struct {
	Path   string
	Route  Route
	Params map[string]string
}

// Resource expands the route's resource template with the location params.
// It returns "" for routes without data.
func (l Location) Resource() string {
	return Expand(l.Route.Resource, l.Params)
}

// Expand fills the "{name}" segments of template with escaped params. It
// returns "" when template is empty or a param is missing.
func Expand(template string, params map[string]string) string {
	if template == "" {
		return ""
	}
	pairs := make([]string, 0, 2*len(params))
	for k, v := range params {
		pairs = append(pairs, k, url.PathEscape(v))
	}
	u, err := mux.NewRouter().Path(template).URLPath(pairs...)
	if err != nil {
		return ""
	}
	// Values are already escaped, so Path holds the wire form.
	return u.Path
}

// CleanPath drops query and fragment, forces a leading slash and removes
// a trailing one.
func CleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
