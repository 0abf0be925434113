// Package api provides the HTTP REST API for the toolkit.
//
// It exposes the project's units, runs comparisons against uploaded
// network snapshots, and serves the audit run history to the desktop
// UI.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines.
package api
