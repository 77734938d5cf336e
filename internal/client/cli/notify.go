package cli

import (
	"context"
	"fmt"
)

// notify is the router's Notifier: guard notices are printed inline.
func (a *App) notify(ctx context.Context, message string) {
	a.log.Debug(ctx, "notice", "message", message)
	fmt.Fprintf(a.out, "! %s\n", message)
}
