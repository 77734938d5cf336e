// Package router maps client paths to screens and decides, before every
// navigation, whether the current session may open the target.
//
// The decision is taken by Guard.Check in a fixed order:
//
//  1. login page while authenticated      -> role home
//  2. protected page while logged out     -> login
//  3. role-restricted page, no common role -> notice + role home
//  4. the generic dashboard               -> role home (when there is one)
//  5. anything else                       -> allowed
//
// The role home is resolved through RolePriority, an ordered role -> path
// table declared once and passed in as configuration.
package router
