package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/clinicdesk/internal/client/router"
	"github.com/dmitrijs2005/clinicdesk/internal/client/session"
	"github.com/dmitrijs2005/clinicdesk/internal/client/storage"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNavigator struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeNavigator) Push(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return f.err
}

type fakeClearer struct{ calls int }

func (f *fakeClearer) ClearAuth(context.Context) { f.calls++ }

type captured struct {
	mu      sync.Mutex
	headers []http.Header
	bodies  [][]byte
}

func (c *captured) add(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, _ := io.ReadAll(r.Body)
	c.headers = append(c.headers, r.Header.Clone())
	c.bodies = append(c.bodies, b)
}

func (c *captured) last() http.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.headers[len(c.headers)-1]
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	rec := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newTestClient(t *testing.T, baseURL string, st storage.Storage, sc SessionClearer, nav Navigator) *APIClient {
	t.Helper()
	c, err := New(Options{
		BaseURL:   baseURL,
		Storage:   st,
		Session:   sc,
		Navigator: nav,
		LoginPath: "/login",
		Logger:    logging.Discard(),
	})
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{BaseURL: "ftp://x", Storage: storage.NewMemoryStorage()})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "https://api.clinic.test"})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "https://api.clinic.test/api/", Storage: storage.NewMemoryStorage()})
	require.NoError(t, err)
}

func TestAuthTransport_AttachesStoredToken(t *testing.T) {
	ctx := context.Background()
	srv, rec := newServer(t, http.StatusOK, `[]`)
	st := storage.NewMemoryStorage()
	require.NoError(t, st.Set(ctx, common.StorageKeyToken, "abc.def.ghi"))
	c := newTestClient(t, srv.URL, st, nil, nil)

	_, err := c.Fetch(ctx, "/patients")
	require.NoError(t, err)

	h := rec.last()
	assert.Equal(t, "Bearer abc.def.ghi", h.Get("Authorization"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	_, err = uuid.Parse(h.Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestAuthTransport_ReadsStorageOnEveryRequest(t *testing.T) {
	ctx := context.Background()
	srv, rec := newServer(t, http.StatusOK, `{}`)
	st := storage.NewMemoryStorage()
	c := newTestClient(t, srv.URL, st, nil, nil)

	require.NoError(t, c.Ping(ctx))
	assert.Empty(t, rec.last().Get("Authorization"), "no token, no header")

	// Another client sharing the storage logs in.
	require.NoError(t, st.Set(ctx, common.StorageKeyToken, "fresh"))
	require.NoError(t, c.Ping(ctx))
	assert.Equal(t, "Bearer fresh", rec.last().Get("Authorization"))
}

func TestUnauthorized_ClearsNavigatesAndFails(t *testing.T) {
	ctx := context.Background()
	srv, _ := newServer(t, http.StatusUnauthorized, `{"message":"token expired"}`)
	sc := &fakeClearer{}
	nav := &fakeNavigator{}
	c := newTestClient(t, srv.URL, storage.NewMemoryStorage(), sc, nav)

	_, err := c.Fetch(ctx, "/patients")

	require.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "token expired")
	assert.Equal(t, 1, sc.calls)
	assert.Equal(t, []string{"/login"}, nav.paths)
}

func TestUnauthorized_NavigatorErrorDoesNotMaskFailure(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, ``)
	nav := &fakeNavigator{err: errors.New("boom")}
	c := newTestClient(t, srv.URL, storage.NewMemoryStorage(), &fakeClearer{}, nav)

	err := c.Do(context.Background(), http.MethodGet, "/users", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestOtherStatusesPassThrough(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, nil},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv, _ := newServer(t, tt.status, `{"title":"problem"}`)
			sc := &fakeClearer{}
			nav := &fakeNavigator{}
			c := newTestClient(t, srv.URL, storage.NewMemoryStorage(), sc, nav)

			_, err := c.Fetch(context.Background(), "/inventory/items")

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "problem", apiErr.Message())
			assert.False(t, errors.Is(err, ErrUnauthorized))
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.Zero(t, sc.calls)
			assert.Empty(t, nav.paths)
		})
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	sc := &fakeClearer{}
	c := newTestClient(t, url, storage.NewMemoryStorage(), sc, &fakeNavigator{})
	err := c.Ping(context.Background())

	require.ErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, sc.calls)
}

func TestCancelledContext(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, srv.URL, storage.NewMemoryStorage(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Ping(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLogin_SendsCredentialsAndDecodes(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK,
		`{"token":"t","userId":12,"username":"nina","email":"n@clinic.test","roles":["Nurse"]}`)
	c := newTestClient(t, srv.URL+"/api", storage.NewMemoryStorage(), nil, nil)

	resp, err := c.Login(context.Background(), "nina", "pw")
	require.NoError(t, err)
	assert.Equal(t, &LoginResponse{Token: "t", UserID: "12", Username: "nina", Email: "n@clinic.test", Roles: []string{"Nurse"}}, resp)

	var sent LoginRequest
	require.NoError(t, json.Unmarshal(rec.bodies[0], &sent))
	assert.Equal(t, LoginRequest{Username: "nina", Password: "pw"}, sent)
}

func TestProfile(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"userId":"u-1","username":"doc","email":"doc@clinic.test"}`)
	c := newTestClient(t, srv.URL, storage.NewMemoryStorage(), nil, nil)

	p, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ID("u-1"), p.UserID)
	assert.Equal(t, "doc@clinic.test", p.Email)
}

func TestDo_DecodeError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `not json`)
	c := newTestClient(t, srv.URL, storage.NewMemoryStorage(), nil, nil)

	var out map[string]any
	err := c.Do(context.Background(), http.MethodGet, "/x", nil, &out)
	require.ErrorContains(t, err, "decode GET /x")
}

func TestID_UnmarshalJSON(t *testing.T) {
	var v struct{ A, B, C ID }
	require.NoError(t, json.Unmarshal([]byte(`{"A":"x","B":42,"C":null}`), &v))
	assert.Equal(t, ID("x"), v.A)
	assert.Equal(t, ID("42"), v.B)
	assert.Equal(t, ID(""), v.C)

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

// A 401 from any screen leaves the session cleared and the next navigation
// treated as logged out.
func TestUnauthorized_EndToEndWithSessionAndRouter(t *testing.T) {
	ctx := context.Background()
	srv, _ := newServer(t, http.StatusUnauthorized, `{}`)

	st := storage.NewMemoryStorage()
	sess := session.NewStore(st, logging.Discard())
	sess.SetAuth(ctx, "tok", "1", "nina", []string{"Nurse"})

	guard := router.NewGuard(router.DefaultRolePriority(), nil, logging.Discard())
	r := router.New(router.DefaultRoutes(), guard, sess, logging.Discard())
	loc, err := r.Navigate(ctx, "/patients")
	require.NoError(t, err)
	require.Equal(t, "/patients", loc.Path)

	c := newTestClient(t, srv.URL, st, sess, r)
	_, err = c.Fetch(ctx, loc.Resource())
	require.ErrorIs(t, err, ErrUnauthorized)

	assert.False(t, sess.IsAuthenticated())
	all, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, router.LoginPath, r.Current().Path)

	loc, err = r.Navigate(ctx, "/nurse")
	require.NoError(t, err)
	assert.Equal(t, router.LoginPath, loc.Path)
}
