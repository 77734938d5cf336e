// Package session holds the authentication state of the running client:
// the bearer token, the user's identity and roles. Every mutation is
// written through to durable storage in the same call so a restarted
// client (or a second one sharing the storage file) sees the same session.
package session

import "slices"

// Session is a point-in-time copy of the authentication state.
type Session struct {
	IsAuthenticated bool
	Token           string
	UserID          string
	Username        string
	UserEmail       string
	// Roles is never nil. An empty slice is a valid authenticated state.
	Roles []string
}

// HasAnyRole reports whether the session holds at least one of roles.
func (s Session) HasAnyRole(roles []string) bool {
	for _, r := range roles {
		if slices.Contains(s.Roles, r) {
			return true
		}
	}
	return false
}

// PrimaryRole is the first role in the session, or "".
func (s Session) PrimaryRole() string {
	if len(s.Roles) == 0 {
		return ""
	}
	return s.Roles[0]
}

func (s Session) clone() Session {
	s.Roles = slices.Clone(s.Roles)
	if s.Roles == nil {
		s.Roles = []string{}
	}
	return s
}

// NormalizeRoles drops empty names and duplicates, keeping first-seen
// order. The result is never nil.
func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if r == "" || slices.Contains(out, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
