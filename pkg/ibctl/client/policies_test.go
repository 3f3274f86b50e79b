package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoliciesList(t *testing.T) {
	policies := []Policy{
		{ID: "p-1", Name: "Block hr to non-corporate segments", AssignedSegment: "hr", State: PolicyStateActive},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/adminapi/v1/barrierPolicies", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(policies)
	}))
	defer server.Close()

	c, err := New(WithServer(server.URL))
	require.NoError(t, err)

	result, err := c.Policies().List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "hr", result[0].AssignedSegment)
}

func TestPoliciesCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/adminapi/v1/barrierPolicies", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req PolicyCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "hr", req.AssignedSegment)
		require.Equal(t, []string{"sales"}, req.SegmentsBlocked)
		require.Equal(t, PolicyStateActive, req.State)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Policy{
			ID:              "p-new",
			Name:            req.Name,
			AssignedSegment: req.AssignedSegment,
			SegmentsBlocked: req.SegmentsBlocked,
			State:           req.State,
		})
	}))
	defer server.Close()

	c, err := New(WithServer(server.URL))
	require.NoError(t, err)

	policy, err := c.Policies().Create(context.Background(), PolicyCreateRequest{
		Name:            "Block hr to non-corporate segments",
		AssignedSegment: "hr",
		SegmentsBlocked: []string{"sales"},
		State:           PolicyStateActive,
	})
	require.NoError(t, err)
	require.Equal(t, "p-new", policy.ID)
}

func TestPoliciesUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/adminapi/v1/barrierPolicies/p-1", r.URL.Path)
		require.Equal(t, http.MethodPatch, r.Method)

		var req PolicyUpdateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, []string{"hr"}, req.SegmentsBlocked)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Policy{ID: "p-1", AssignedSegment: "sales", SegmentsBlocked: req.SegmentsBlocked, State: req.State})
	}))
	defer server.Close()

	c, err := New(WithServer(server.URL))
	require.NoError(t, err)

	policy, err := c.Policies().Update(context.Background(), "p-1", PolicyUpdateRequest{
		SegmentsBlocked: []string{"hr"},
		State:           PolicyStateActive,
	})
	require.NoError(t, err)
	require.Equal(t, "p-1", policy.ID)
}

func TestPoliciesStartApplication(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/adminapi/v1/barrierPolicies/apply", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ApplyStatus{Status: "accepted"})
	}))
	defer server.Close()

	c, err := New(WithServer(server.URL))
	require.NoError(t, err)

	status, err := c.Policies().StartApplication(context.Background())
	require.NoError(t, err)
	require.Equal(t, "accepted", status.Status)
}

func TestSegmentsList(t *testing.T) {
	segments := []Segment{{ID: "s-1", Name: "hr"}, {ID: "s-2", Name: "sales"}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/adminapi/v1/segments", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(segments)
	}))
	defer server.Close()

	c, err := New(WithServer(server.URL))
	require.NoError(t, err)

	result, err := c.Segments().List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, "hr", result[0].Name)
}
