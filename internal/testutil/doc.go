// Package testutil provides shared helpers for the SDK's tests: an
// IPv4-only httptest server, an in-memory mock of the myTarget token
// endpoint, and self-signed certificate writers for TLS tests.
package testutil
