package client

import (
	"context"
	"net/http"
)

type SessionService struct {
	client *Client
}

func (c *Client) Session() *SessionService {
	return &SessionService{client: c}
}

// Open establishes a management session tenant-side. Callers running with an
// externally managed session skip this.
func (s *SessionService) Open(ctx context.Context) error {
	return s.client.do(ctx, http.MethodPost, "adminapi/v1/session", nil, nil)
}

func (s *SessionService) Close(ctx context.Context) error {
	return s.client.do(ctx, http.MethodDelete, "adminapi/v1/session", nil, nil)
}
