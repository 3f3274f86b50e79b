package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type PolicyState string

const (
	PolicyStateActive   PolicyState = "Active"
	PolicyStateInactive PolicyState = "Inactive"
)

// Policy is a barrier policy blocking its assigned segment from each segment
// named in SegmentsBlocked. The id is an opaque tenant-side handle.
type Policy struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	AssignedSegment string      `json:"assignedSegment"`
	SegmentsBlocked []string    `json:"segmentsBlocked,omitempty"`
	State           PolicyState `json:"state"`
}

type PolicyCreateRequest struct {
	Name            string      `json:"name"`
	AssignedSegment string      `json:"assignedSegment"`
	SegmentsBlocked []string    `json:"segmentsBlocked"`
	State           PolicyState `json:"state"`
}

type PolicyUpdateRequest struct {
	SegmentsBlocked []string    `json:"segmentsBlocked"`
	State           PolicyState `json:"state"`
}

// ApplyStatus reports the tenant-side acceptance of a bulk apply trigger.
// Materialization is asynchronous and may take hours; the trigger outcome is
// all the API reports synchronously.
type ApplyStatus struct {
	Status string `json:"status,omitempty"`
}

type PolicyService struct {
	client *Client
}

func (c *Client) Policies() *PolicyService {
	return &PolicyService{client: c}
}

func (s *PolicyService) List(ctx context.Context) ([]Policy, error) {
	var policies []Policy
	if err := s.client.do(ctx, http.MethodGet, "adminapi/v1/barrierPolicies", nil, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

func (s *PolicyService) Create(ctx context.Context, req PolicyCreateRequest) (*Policy, error) {
	var policy Policy
	if err := s.client.do(ctx, http.MethodPost, "adminapi/v1/barrierPolicies", req, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (s *PolicyService) Update(ctx context.Context, id string, req PolicyUpdateRequest) (*Policy, error) {
	endpoint := fmt.Sprintf("adminapi/v1/barrierPolicies/%s", url.PathEscape(id))
	var policy Policy
	if err := s.client.do(ctx, http.MethodPatch, endpoint, req, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

// StartApplication triggers the tenant-side bulk application of all pending
// policy changes. Fire-and-forget: only the trigger call itself is awaited.
func (s *PolicyService) StartApplication(ctx context.Context) (*ApplyStatus, error) {
	var status ApplyStatus
	if err := s.client.do(ctx, http.MethodPost, "adminapi/v1/barrierPolicies/apply", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
