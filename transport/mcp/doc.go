// Package mcp exposes the simbridge broker over the Model Context Protocol.
//
// The package implements a thin MCP client that proxies every tool call to
// the bridge's REST API rather than touching the broker directly, so MCP
// works identically whether it runs inside the bridge process (stdio-mcp
// mode) or against an already-running external server.
//
// Tools:
//   - bridge_health
//   - simulator_status
//   - request_aircraft_data
//   - request_simulator_status
//   - ping_simulator
//   - describe_status_code
package mcp
