package protocol

import (
	"bytes"
	"encoding/json"
)

// Decode turns a raw frame into an Envelope. It is a total function: any
// input, including binary garbage, produces an envelope and never an error.
//
// A frame that parses to a JSON object with a string "type" field decodes to
// that envelope. A frame that parses to anything else decodes to TypeUnknown
// with the parsed value as data. A frame that does not parse at all decodes
// to TypeUnknown with the original text as data. Binary frames are
// interpreted as UTF-8 text.
func Decode(raw []byte) Envelope {
	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Envelope{Type: TypeUnknown, Data: string(raw)}
	}

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return Envelope{Type: TypeUnknown, Data: parsed}
	}

	typ, ok := obj["type"].(string)
	if !ok {
		return Envelope{Type: TypeUnknown, Data: parsed}
	}

	env := Envelope{Type: typ, Data: obj["data"]}
	if ts, ok := obj["ts"].(float64); ok {
		env.Timestamp = ts
	}
	return env
}

// DecodeChunks decodes a frame delivered as a sequence of byte chunks. The
// chunks are concatenated in arrival order before decoding.
func DecodeChunks(chunks ...[]byte) Envelope {
	return Decode(bytes.Join(chunks, nil))
}

// Encode serializes an envelope to its wire form. Encoding an envelope built
// from plain JSON-compatible values cannot fail; the error return exists for
// callers that pass arbitrary data payloads.
func Encode(env Envelope) ([]byte, error) {
	return json.Marshal(env)
}
