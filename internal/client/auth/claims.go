// Package auth reads the claims of the bearer token issued by the clinic
// API. The signature is not verified here: only the server can do that.
// The claims are used to fill in identity fields the login response may
// omit and to show when the token expires.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Role and identity claim names emitted by ASP.NET Core identity, which the
// clinic API is built on, alongside the short JWT names.
const (
	claimRoleURI  = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	claimNameURI  = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	claimIDURI    = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	claimEmailURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
)

// Claims is the identity carried by a token.
type Claims struct {
	UserID    string
	Username  string
	Email     string
	Roles     []string
	ExpiresAt time.Time
}

// Expired reports whether the token has an expiry that lies before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes token without verifying it.
func ParseClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	c := Claims{
		UserID:   firstString(mc, "sub", "userId", "nameid", claimIDURI),
		Username: firstString(mc, "unique_name", "username", "name", claimNameURI),
		Email:    firstString(mc, "email", claimEmailURI),
		Roles:    collectRoles(mc, "role", "roles", claimRoleURI),
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

func firstString(mc jwt.MapClaims, names ...string) string {
	for _, n := range names {
		switch v := mc[n].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// collectRoles accepts each claim as a single string or an array.
func collectRoles(mc jwt.MapClaims, names ...string) []string {
	var roles []string
	for _, n := range names {
		switch v := mc[n].(type) {
		case string:
			roles = append(roles, v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					roles = append(roles, s)
				}
			}
		}
	}
	return roles
}
