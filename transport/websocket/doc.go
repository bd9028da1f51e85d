// Package websocket provides the WebSocket transport core of the simbridge
// broker: connection lifecycle, message dispatch, and outbound requests.
//
// The package implements:
//   - Single-occupancy peer management (one simulator client at a time)
//   - Supersession: a new connection evicts the previous peer
//   - Type-discriminated dispatch of inbound JSON envelopes
//   - Simulator status tracking merged from inbound Status envelopes
//   - Typed outbound request primitives (data request, status poll, ping)
//
// Architecture:
//
// A Server owns at most one live peer connection. Each adopted connection
// gets a dedicated read goroutine that decodes frames and dispatches them
// synchronously; there is no buffering layer, so envelopes from a peer are
// delivered to callbacks in frame-arrival order.
//
// Message Protocol:
//
// One JSON object per text frame, top-level shape {type, data?, ts?}.
// Inbound canonical types: AircraftData, Status, pong, Error/error.
// Unrecognized types are accepted and ignored for forward compatibility.
// Outbound types: request (with nested data.type), Status (poll), ping.
//
// Connection Lifecycle:
//
//  1. Peer upgrades at the /ws endpoint
//  2. Any previously attached peer is closed with reason "New client connected"
//  3. OnConnect fires once per adoption
//  4. Frames are decoded and dispatched until the connection closes
//  5. OnDisconnect fires only for the currently attached peer; close
//     notifications from evicted peers are suppressed
//
// Concurrency:
//
// Sends are serialized by a per-peer write mutex and may be issued from any
// goroutine. Callbacks run on the read goroutine of the attached peer;
// consumer callbacks that block delay subsequent dispatch for that peer.
// Callback panics are not recovered here; propagation across the callback
// boundary is the caller's contract.
package websocket
