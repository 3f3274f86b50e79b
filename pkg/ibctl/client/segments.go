package client

import (
	"context"
	"net/http"
)

// Segment is a named grouping of users/resources in the tenant's
// information-barrier feature. Only the name participates in policy
// computation; the id is the tenant-side handle.
type Segment struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type SegmentService struct {
	client *Client
}

func (c *Client) Segments() *SegmentService {
	return &SegmentService{client: c}
}

func (s *SegmentService) List(ctx context.Context) ([]Segment, error) {
	var segments []Segment
	if err := s.client.do(ctx, http.MethodGet, "adminapi/v1/segments", nil, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}
