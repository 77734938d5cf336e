package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/client/auth"
	"github.com/dmitrijs2005/clinicdesk/internal/client/client"
	"github.com/dmitrijs2005/clinicdesk/internal/client/router"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
)

// Open navigates to path through the guard and renders wherever the
// navigation ends up.
func (a *App) Open(ctx context.Context, path string) error {
	loc, err := a.router.Navigate(ctx, path)
	if err != nil {
		a.log.Error(ctx, "navigation failed", "path", path, "error", err)
		fmt.Fprintf(a.out, "Cannot open %s: %v\n", path, err)
		return err
	}
	return a.render(ctx, loc)
}

// Reload re-runs navigation for the current path, so a changed session is
// re-checked by the guard and screen data is fetched again.
func (a *App) Reload(ctx context.Context) error {
	path := a.router.Current().Path
	if path == "" {
		path = router.HomePath
	}
	return a.Open(ctx, path)
}

func (a *App) render(ctx context.Context, loc router.Location) error {
	fmt.Fprintf(a.out, "== %s [%s] ==\n", screenTitle(loc), loc.Path)

	switch loc.Route.Path {
	case router.LoginPath:
		fmt.Fprintln(a.out, "Please log in (type 'login')")
		return nil
	case router.DashboardPath:
		fmt.Fprintln(a.out, "No role-specific home is configured for your account.")
		return a.Routes(ctx)
	}

	data, err := a.screenService.Load(ctx, loc)
	if err != nil {
		a.log.Warn(ctx, "screen data unavailable", "path", loc.Path, "error", err)
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Your session has expired, please log in again")
			return err
		}
		fmt.Fprintf(a.out, "Failed to load data: %s\n", describeError(err))
		return err
	}
	if len(data) == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		fmt.Fprintln(a.out, string(data))
		return nil
	}
	fmt.Fprintln(a.out, buf.String())
	return nil
}

func screenTitle(loc router.Location) string {
	if loc.Route.Screen != "" {
		return loc.Route.Screen
	}
	return loc.Route.Name
}

// Routes lists the pages the current session may open.
func (a *App) Routes(ctx context.Context) error {
	s := a.sessions.Snapshot()
	if !s.IsAuthenticated {
		fmt.Fprintln(a.out, "Log in to see available pages")
		return nil
	}
	routes := a.router.Reachable(s)
	if len(routes) == 0 {
		fmt.Fprintln(a.out, "No pages available")
		return nil
	}
	fmt.Fprintln(a.out, "Available pages:")
	for _, rt := range routes {
		fmt.Fprintf(a.out, "  %-26s %s\n", rt.Path, rt.Screen)
	}
	return nil
}

// WhoAmI prints the session. verbose adds the raw storage contents with
// the token masked.
func (a *App) WhoAmI(ctx context.Context, verbose bool) error {
	s := a.sessions.Snapshot()
	if !s.IsAuthenticated {
		fmt.Fprintln(a.out, "Not logged in")
	} else {
		fmt.Fprintf(a.out, "User:    %s (id %s)\n", s.Username, s.UserID)
		if s.UserEmail != "" {
			fmt.Fprintf(a.out, "Email:   %s\n", s.UserEmail)
		}
		fmt.Fprintf(a.out, "Roles:   %s\n", strings.Join(s.Roles, ", "))
		fmt.Fprintf(a.out, "Home:    %s\n", a.guard.Home(s))
		fmt.Fprintf(a.out, "Token:   %s\n", tokenExpiry(s.Token, time.Now()))
	}

	if !verbose {
		return nil
	}
	kv, err := a.storage.List(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing storage", "error", err)
		return err
	}
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fmt.Fprintln(a.out, "Storage:")
	for _, k := range keys {
		v := kv[k]
		if k == common.StorageKeyToken {
			v = maskToken(v)
		}
		fmt.Fprintf(a.out, "  %s = %s\n", k, v)
	}
	return nil
}

func tokenExpiry(token string, now time.Time) string {
	claims, err := auth.ParseClaims(token)
	switch {
	case err != nil:
		return "unreadable"
	case claims.ExpiresAt.IsZero():
		return "no expiry"
	case claims.Expired(now):
		return "expired at " + claims.ExpiresAt.Local().Format(time.RFC3339)
	}
	return "valid until " + claims.ExpiresAt.Local().Format(time.RFC3339)
}

func maskToken(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:6] + "..." + token[len(token)-4:]
}

// status is the prompt decoration: user, primary role, path and mode.
func (a *App) status() string {
	var parts []string
	s := a.sessions.Snapshot()
	if s.IsAuthenticated {
		u := s.Username
		if r := s.PrimaryRole(); r != "" {
			u += "/" + r
		}
		parts = append(parts, u)
	}
	if p := a.router.Current().Path; p != "" {
		parts = append(parts, p)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}
