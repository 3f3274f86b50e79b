// Package client implements the HTTP client for the tenant's information
// barrier management API. Resources are exposed as typed services
// (Segments, Policies, Session) hanging off a shared Client.
package client
