package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/client/client"
	"github.com/dmitrijs2005/clinicdesk/internal/client/config"
	"github.com/dmitrijs2005/clinicdesk/internal/client/router"
	"github.com/dmitrijs2005/clinicdesk/internal/client/services"
	"github.com/dmitrijs2005/clinicdesk/internal/client/session"
	"github.com/dmitrijs2005/clinicdesk/internal/client/storage"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single liveness check of the watcher.
const pingTimeout = 3 * time.Second

type App struct {
	config        *config.Config
	log           logging.Logger
	storage       storage.Storage
	sessions      *session.Store
	guard         *router.Guard
	router        *router.Router
	authService   services.AuthService
	screenService services.ScreenService

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp builds the client on the process's standard streams.
func NewApp(c *config.Config) (*App, error) {
	return newApp(context.Background(), c, os.Stdin, os.Stdout, logging.New(os.Stderr, c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, log logging.Logger) (*App, error) {
	st, err := storage.Open(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "error initializing storage", "path", c.StoragePath, "error", err)
		return nil, err
	}

	a := &App{
		config:  c,
		log:     log,
		storage: st,
		reader:  bufio.NewReader(in),
		out:     &syncWriter{w: out},
	}

	a.sessions = session.NewStore(st, log)
	a.guard = router.NewGuard(rolePriority(c.RolePriority), router.NotifierFunc(a.notify), log)
	a.router = router.New(router.DefaultRoutes(), a.guard, a.sessions, log)

	api, err := client.New(client.Options{
		BaseURL:   c.APIBaseURL,
		Timeout:   c.RequestTimeout,
		Storage:   st,
		Session:   a.sessions,
		Navigator: a.router,
		LoginPath: router.LoginPath,
		Logger:    log,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	a.authService = services.NewAuthService(api, a.sessions, log)
	a.screenService = services.NewScreenService(api)
	return a, nil
}

// rolePriority converts the configured order, falling back to the
// built-in one when config leaves it empty.
func rolePriority(entries []config.RoleHome) router.RolePriority {
	if len(entries) == 0 {
		return router.DefaultRolePriority()
	}
	p := make(router.RolePriority, 0, len(entries))
	for _, e := range entries {
		p = append(p, router.RoleHome{Role: e.Role, Path: e.Path})
	}
	return p
}

// Mode reports the last observed connectivity state.
func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

// Run restores the session, opens the start page, starts the online
// watcher and blocks in the REPL until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to ClinicDesk CLI (type 'help' for commands)")

	a.sessions.InitAuth(ctx)
	_ = a.Open(ctx, router.HomePath)

	watchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)
	}()
	defer func() {
		cancel()
		<-done
	}()

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

// Close releases the storage handle.
func (a *App) Close() {
	if err := a.storage.Close(); err != nil {
		a.log.Error(context.Background(), "error closing storage", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}

// checkOnline pings the API once and records the result.
func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher checks connectivity right away and then every
// interval until ctx is done. A non-positive interval only does the first
// check.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)
	if interval <= 0 {
		a.log.Warn(ctx, "online watcher disabled", "interval", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// syncWriter serialises writes from the REPL and the watcher goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
