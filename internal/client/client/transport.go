package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/clinicdesk/internal/client/storage"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/google/uuid"
)

// SessionClearer wipes the session after the API rejects the token.
type SessionClearer interface {
	ClearAuth(ctx context.Context)
}

// Navigator moves the user to another route.
type Navigator interface {
	Push(ctx context.Context, path string) error
}

// authTransport decorates outbound requests with the stored bearer token
// and the standard headers.
type authTransport struct {
	next    http.RoundTripper
	storage storage.Storage
	log     logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)

	req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	if req.Header.Get(common.RequestIDHeaderName) == "" {
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	token, ok, err := t.storage.Get(ctx, common.StorageKeyToken)
	if err != nil {
		t.log.Warn(ctx, "read token for request", "error", err)
	}
	if ok && token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	return t.next.RoundTrip(req)
}

// unauthorizedTransport logs the user out when the API answers 401.
type unauthorizedTransport struct {
	next      http.RoundTripper
	session   SessionClearer
	navigator Navigator
	loginPath string
	log       logging.Logger
}

func (t *unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	ctx := req.Context()
	sent := req
	if resp.Request != nil {
		sent = resp.Request
	}
	t.log.Warn(ctx, "401 from API, clearing session", "method", req.Method, "path", req.URL.Path,
		"request_id", sent.Header.Get(common.RequestIDHeaderName))

	if t.session != nil {
		t.session.ClearAuth(ctx)
	}
	if t.navigator != nil {
		if nerr := t.navigator.Push(context.WithoutCancel(ctx), t.loginPath); nerr != nil {
			t.log.Error(ctx, "redirect to login", "error", nerr)
		}
	}
	return resp, nil
}
