package protocol

import (
	"reflect"
	"testing"
)

func TestDecodeValidEnvelope(t *testing.T) {
	frame := `{"type":"AircraftData","data":{"Aircraft":{"PLANE_ALTITUDE":2200}}}`

	env := Decode([]byte(frame))

	if env.Type != TypeAircraftData {
		t.Errorf("Expected type %q, got %q", TypeAircraftData, env.Type)
	}

	aircraft := AircraftPayload(env.Data)
	if aircraft == nil {
		t.Fatal("Expected aircraft payload, got nil")
	}
	if aircraft["PLANE_ALTITUDE"] != float64(2200) {
		t.Errorf("Expected PLANE_ALTITUDE 2200, got %v", aircraft["PLANE_ALTITUDE"])
	}
}

func TestDecodeTimestamp(t *testing.T) {
	env := Decode([]byte(`{"type":"Status","data":{},"ts":1712345678901}`))

	if env.Type != TypeStatus {
		t.Errorf("Expected type Status, got %q", env.Type)
	}
	if env.Timestamp != 1712345678901 {
		t.Errorf("Expected timestamp 1712345678901, got %v", env.Timestamp)
	}
}

func TestDecodeMissingType(t *testing.T) {
	env := Decode([]byte(`{"data":{"x":1}}`))

	if env.Type != TypeUnknown {
		t.Errorf("Expected unknown type, got %q", env.Type)
	}

	// The whole parsed object is preserved as data.
	obj, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected parsed object as data, got %T", env.Data)
	}
	if _, ok := obj["data"]; !ok {
		t.Error("Parsed object should retain its original fields")
	}
}

func TestDecodeNonStringType(t *testing.T) {
	env := Decode([]byte(`{"type":42,"data":"x"}`))

	if env.Type != TypeUnknown {
		t.Errorf("Expected unknown type for numeric discriminator, got %q", env.Type)
	}
}

func TestDecodeNonObjectJSON(t *testing.T) {
	env := Decode([]byte(`[1,2,3]`))

	if env.Type != TypeUnknown {
		t.Errorf("Expected unknown type, got %q", env.Type)
	}
	if !reflect.DeepEqual(env.Data, []interface{}{float64(1), float64(2), float64(3)}) {
		t.Errorf("Expected parsed array as data, got %v", env.Data)
	}
}

func TestDecodeNotJSON(t *testing.T) {
	env := Decode([]byte("not json"))

	if env.Type != TypeUnknown {
		t.Errorf("Expected unknown type, got %q", env.Type)
	}
	if env.Data != "not json" {
		t.Errorf("Expected original text as data, got %v", env.Data)
	}
}

func TestDecodeChunks(t *testing.T) {
	env := DecodeChunks(
		[]byte(`{"type":"Sta`),
		[]byte(`tus","data":{"code":"601"`),
		[]byte(`,"message":"MSFS"}}`),
	)

	if env.Type != TypeStatus {
		t.Errorf("Expected reassembled Status envelope, got %q", env.Type)
	}

	var msg StatusMessage
	if err := DecodeData(env.Data, &msg); err != nil {
		t.Fatalf("DecodeData failed: %v", err)
	}
	if msg.Code != "601" || msg.Message != "MSFS" {
		t.Errorf("Expected code 601 / message MSFS, got %+v", msg)
	}
}

func TestRequestRoundTrips(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
	}{
		{"aircraft data request", AircraftDataRequest()},
		{"status request", StatusRequest()},
		{"ping", Ping()},
	}

	for _, tt := range tests {
		raw, err := Encode(tt.env)
		if err != nil {
			t.Fatalf("%s: Encode failed: %v", tt.name, err)
		}

		decoded := Decode(raw)
		if decoded.Type != tt.env.Type {
			t.Errorf("%s: round-trip type %q, want %q", tt.name, decoded.Type, tt.env.Type)
		}
	}

	// The request envelope must carry the nested payload selector.
	decoded := Decode(mustEncode(t, AircraftDataRequest()))
	data, ok := decoded.Data.(map[string]interface{})
	if !ok {
		t.Fatal("Expected request data object")
	}
	if data["type"] != TypeAircraftData {
		t.Errorf("Expected nested type %q, got %v", TypeAircraftData, data["type"])
	}
}

func TestAircraftPayloadFlat(t *testing.T) {
	// Flat producer format: the data object is the variable map itself.
	env := Decode([]byte(`{"type":"AircraftData","data":{"PLANE_ALTITUDE":1000,"AIRSPEED":120}}`))

	aircraft := AircraftPayload(env.Data)
	if aircraft == nil {
		t.Fatal("Expected aircraft payload for flat format")
	}
	if aircraft["PLANE_ALTITUDE"] != float64(1000) {
		t.Errorf("Expected PLANE_ALTITUDE 1000, got %v", aircraft["PLANE_ALTITUDE"])
	}
}

func TestAircraftPayloadNonObject(t *testing.T) {
	if got := AircraftPayload("just a string"); got != nil {
		t.Errorf("Expected nil for non-object data, got %v", got)
	}
	if got := AircraftPayload(nil); got != nil {
		t.Errorf("Expected nil for nil data, got %v", got)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		data     interface{}
		expected string
	}{
		{"string data", "socket reset", "socket reset"},
		{"object with message", map[string]interface{}{"message": "sim crashed"}, "sim crashed"},
		{"object without message", map[string]interface{}{"code": "500"}, "Unknown error"},
		{"object with non-string message", map[string]interface{}{"message": 42}, "Unknown error"},
		{"nil data", nil, "Unknown error"},
		{"numeric data", float64(7), "Unknown error"},
	}

	for _, tt := range tests {
		if got := ErrorMessage(tt.data); got != tt.expected {
			t.Errorf("%s: ErrorMessage = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func mustEncode(t *testing.T, env Envelope) []byte {
	t.Helper()
	raw, err := Encode(env)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return raw
}
