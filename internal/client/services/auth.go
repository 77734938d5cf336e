// Package services contains the application services of the clinicdesk
// client. This file defines the authentication service: login, logout and
// the liveness check used by the online watcher.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clinicdesk/internal/client/auth"
	"github.com/dmitrijs2005/clinicdesk/internal/client/client"
	"github.com/dmitrijs2005/clinicdesk/internal/client/session"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
)

// AuthAPI is the part of the API client the auth service needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*client.LoginResponse, error)
	Profile(ctx context.Context) (*client.Profile, error)
	Ping(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (session.Session, error)
	Logout(ctx context.Context)
	Ping(ctx context.Context) error
}

type authService struct {
	api     AuthAPI
	session *session.Store
	log     logging.Logger
}

func NewAuthService(api AuthAPI, store *session.Store, log logging.Logger) AuthService {
	return &authService{api: api, session: store, log: log.With("component", "auth")}
}

// Login authenticates against the API and records the session. Fields the
// login response leaves out are taken from the token claims; a still
// missing email is looked up through the profile endpoint.
func (a *authService) Login(ctx context.Context, username string, password []byte) (session.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return session.Session{}, common.ErrEmptyCredentials
	}

	resp, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		return session.Session{}, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return session.Session{}, fmt.Errorf("login: %w: empty token", common.ErrInvalidToken)
	}

	userID, name, email, roles := string(resp.UserID), resp.Username, resp.Email, resp.Roles
	if userID == "" || name == "" || email == "" || len(roles) == 0 {
		claims, err := auth.ParseClaims(resp.Token)
		if err != nil {
			a.log.Warn(ctx, "token claims unreadable", "error", err)
		}
		userID = firstNonEmpty(userID, claims.UserID)
		name = firstNonEmpty(name, claims.Username, username)
		email = firstNonEmpty(email, claims.Email)
		if len(roles) == 0 {
			roles = claims.Roles
		}
	}
	if userID == "" {
		return session.Session{}, fmt.Errorf("login: %w: no user id", common.ErrInvalidToken)
	}

	a.session.SetAuth(ctx, resp.Token, userID, name, roles)
	if email == "" {
		p, err := a.api.Profile(ctx)
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			a.session.ClearAuth(ctx)
			return session.Session{}, fmt.Errorf("login: profile: %w", err)
		case err != nil:
			a.log.Warn(ctx, "profile unavailable", "error", err)
		default:
			email = p.Email
		}
	}
	// Any 401 on the way clears the session through the API client.
	if !a.session.IsAuthenticated() {
		return session.Session{}, fmt.Errorf("login: %w: session cleared", client.ErrUnauthorized)
	}
	if email != "" {
		a.session.SetUserProfile(ctx, email)
	}
	a.log.Info(ctx, "logged in", "user_id", userID)
	return a.session.Snapshot(), nil
}

// Logout forgets the session locally. The API keeps no server-side
// session to revoke.
func (a *authService) Logout(ctx context.Context) {
	a.session.ClearAuth(ctx)
	a.log.Info(ctx, "logged out")
}

func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
