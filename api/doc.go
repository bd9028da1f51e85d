// Package api provides the HTTP surface of the simbridge broker.
//
// The api package implements:
//   - The /ws WebSocket upgrade endpoint for the simulator client
//   - REST endpoints to inspect simulator status and the code taxonomy
//   - REST triggers for the outbound request primitives
//
// Endpoints:
//
// Bridge state:
//   - GET /api/health - Liveness probe
//   - GET /api/status - Peer attachment flag plus the simulator status snapshot
//
// Status taxonomy:
//   - GET /api/status/codes - All registered codes with category and description
//   - GET /api/status/codes/{code} - Classification of a single code
//
// Outbound requests (each returns {"sent": true} or 409 when no peer is
// attached):
//   - POST /api/request/aircraft-data
//   - POST /api/request/status
//   - POST /api/ping
//
// Request/Response Format:
//
// All endpoints return JSON. Errors are returned as JSON with appropriate
// HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
