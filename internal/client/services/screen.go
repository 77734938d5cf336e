package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/clinicdesk/internal/client/router"
)

// ResourceAPI fetches raw JSON from the API.
type ResourceAPI interface {
	Fetch(ctx context.Context, path string) (json.RawMessage, error)
}

// ScreenService loads the data shown on a screen.
type ScreenService interface {
	// Load returns nil data for screens without a resource.
	Load(ctx context.Context, loc router.Location) (json.RawMessage, error)
}

type screenService struct {
	api ResourceAPI
}

func NewScreenService(api ResourceAPI) ScreenService {
	return &screenService{api: api}
}

func (s *screenService) Load(ctx context.Context, loc router.Location) (json.RawMessage, error) {
	path := loc.Resource()
	if path == "" {
		return nil, nil
	}
	return s.api.Fetch(ctx, path)
}
