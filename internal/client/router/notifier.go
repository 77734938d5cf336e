package router

import "context"

// AccessDeniedMessage is shown when a role-restricted page is refused.
const AccessDeniedMessage = "Access Denied: You do not have permission to view this page."

// Notifier surfaces a message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) { f(ctx, message) }

// NopNotifier drops every message.
var NopNotifier = NotifierFunc(func(context.Context, string) {})
