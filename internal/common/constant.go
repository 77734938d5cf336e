// Package common contains shared constants and sentinel errors used across
// clinicdesk components.
package common

// Headers attached to every outbound API request.
const (
	AuthorizationHeaderName = "Authorization"
	ContentTypeHeaderName   = "Content-Type"
	RequestIDHeaderName     = "X-Request-ID"

	BearerPrefix    = "Bearer "
	JSONContentType = "application/json"
)

// Durable storage keys. The names match the ones the web client kept in
// localStorage so a shared backend sees the same vocabulary.
const (
	StorageKeyToken    = "jwtToken"
	StorageKeyUserID   = "userId"
	StorageKeyUsername = "username"
	StorageKeyRoles    = "userRoles"
	StorageKeyEmail    = "userEmail"
)

// SessionStorageKeys lists every key owned by the session.
var SessionStorageKeys = []string{
	StorageKeyToken,
	StorageKeyUserID,
	StorageKeyUsername,
	StorageKeyRoles,
	StorageKeyEmail,
}
