package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clinicdesk/internal/client/client"
	"github.com/dmitrijs2005/clinicdesk/internal/client/router"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, authenticates against the API and opens
// the dashboard, which the guard forwards to the user's role home.
//
// The password is securely wiped before returning. A failed login leaves
// the session cleared and is reported to the user; the error is returned.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Already logged in as %s, use 'logout' first\n", a.sessions.Snapshot().Username)
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		a.log.Warn(ctx, "login unsuccessful", "error", err)
		fmt.Fprintf(a.out, "Login failed: %s\n", describeError(err))
		return err
	}
	a.setMode(ModeOnline)

	fmt.Fprintf(a.out, "Welcome, %s%s\n", s.Username, roleSuffix(s.Roles))
	// A screen that fails to load is reported by Open; the login stands.
	_ = a.Open(ctx, router.DashboardPath)
	return nil
}

// Logout forgets the session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	a.authService.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	_ = a.Open(ctx, router.LoginPath)
	return nil
}

// describeError turns service errors into a short user-facing reason.
func describeError(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, common.ErrEmptyCredentials):
		return "username and password are required"
	case errors.Is(err, client.ErrUnavailable):
		return "the clinic API is unavailable"
	case errors.Is(err, client.ErrUnauthorized):
		return "invalid username or password"
	case errors.Is(err, client.ErrForbidden):
		return "access denied by the server"
	case errors.As(err, &apiErr):
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
		return fmt.Sprintf("server returned %d", apiErr.StatusCode)
	}
	return err.Error()
}

func roleSuffix(roles []string) string {
	if len(roles) == 0 {
		return ""
	}
	return " (" + strings.Join(roles, ", ") + ")"
}
