package router

import (
	"context"

	"github.com/dmitrijs2005/clinicdesk/internal/client/session"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
)

// Decision is the guard's verdict. An empty Redirect allows the navigation.
type Decision struct {
	Redirect string
	Reason   string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

type Guard struct {
	priority RolePriority
	notifier Notifier
	log      logging.Logger
}

func NewGuard(priority RolePriority, notifier Notifier, log logging.Logger) *Guard {
	if notifier == nil {
		notifier = NopNotifier
	}
	return &Guard{priority: priority, notifier: notifier, log: log.With("component", "guard")}
}

// Home is the landing path of s.
func (g *Guard) Home(s session.Session) string {
	return g.priority.Home(s.Roles)
}

// Check decides whether s may open target. It never fails.
func (g *Guard) Check(ctx context.Context, target Location, s session.Session) Decision {
	d := g.check(ctx, target, s)
	g.log.Debug(ctx, "guard decision", "path", target.Path, "redirect", d.Redirect, "reason", d.Reason)
	return d
}

func (g *Guard) check(ctx context.Context, target Location, s session.Session) Decision {
	route := target.Route

	if route.Path == LoginPath && s.IsAuthenticated {
		return Decision{Redirect: g.Home(s), Reason: "already authenticated"}
	}

	if route.RequiresAuth && !s.IsAuthenticated {
		return Decision{Redirect: LoginPath, Reason: "authentication required"}
	}

	if route.AllowedRoles != nil && !s.HasAnyRole(route.AllowedRoles) {
		g.notifier.Notify(ctx, AccessDeniedMessage)
		return Decision{Redirect: g.Home(s), Reason: "role not allowed"}
	}

	// Users without a known role stay on the generic dashboard.
	if route.Path == DashboardPath {
		if home := g.Home(s); home != DashboardPath {
			return Decision{Redirect: home, Reason: "dashboard resolves to role home"}
		}
	}

	return Decision{}
}
