// Package auth obtains and caches bearer tokens for the tenant management
// API. ibctl is a headless automation tool, so the only supported grant is
// client-credentials; tokens are cached on disk and refreshed shortly before
// expiry.
package auth
