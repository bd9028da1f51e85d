// Package protocol defines the JSON envelope exchanged over the bridge
// socket and the codec that turns raw frames into typed envelopes.
package protocol

import "encoding/json"

// Canonical envelope types. Matching is exact and case-sensitive; the only
// historical exception is the error type, which is accepted in both casings.
const (
	TypeAircraftData = "AircraftData"
	TypeStatus       = "Status"
	TypePong         = "pong"
	TypeError        = "Error"
	TypeErrorLower   = "error"
	TypePing         = "ping"
	TypeRequest      = "request"
	TypeUnknown      = "unknown"
)

// Envelope is the decoded unit of communication over the socket. Type is
// always a string after decoding; malformed frames decode to TypeUnknown
// with Data holding the best-effort payload.
type Envelope struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp float64     `json:"ts,omitempty"`
}

// StatusMessage is the taxonomy-style Status payload. Unrecognized codes are
// preserved verbatim, never coerced or rejected.
type StatusMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PongResponse is the payload of a pong envelope answering an outbound ping.
type PongResponse struct {
	Timestamp float64 `json:"timestamp,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// AircraftDataRequest builds the canonical envelope asking the simulator
// client for an aircraft data snapshot.
func AircraftDataRequest() Envelope {
	return Envelope{
		Type: TypeRequest,
		Data: map[string]interface{}{"type": TypeAircraftData},
	}
}

// StatusRequest builds the canonical status poll envelope.
func StatusRequest() Envelope {
	return Envelope{
		Type: TypeStatus,
		Data: map[string]interface{}{},
	}
}

// Ping builds the keep-alive ping envelope.
func Ping() Envelope {
	return Envelope{Type: TypePing}
}

// AircraftPayload extracts the aircraft variable map from an AircraftData
// envelope's data. Producers send either a nested {"Aircraft": {...}} object
// or the variable map directly; both are tolerated. Non-object data yields
// nil.
func AircraftPayload(data interface{}) map[string]interface{} {
	obj, ok := data.(map[string]interface{})
	if !ok {
		return nil
	}
	if nested, ok := obj["Aircraft"].(map[string]interface{}); ok {
		return nested
	}
	return obj
}

// ErrorMessage derives a human-readable message from an error envelope's
// data: the data itself when it is a string, its "message" field when it is
// an object, and "Unknown error" otherwise.
func ErrorMessage(data interface{}) string {
	switch v := data.(type) {
	case string:
		return v
	case map[string]interface{}:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}
	return "Unknown error"
}

// DecodeData converts loosely-typed envelope data into a concrete payload
// struct by round-tripping through JSON.
func DecodeData(data interface{}, v interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
