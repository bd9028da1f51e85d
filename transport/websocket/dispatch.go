package websocket

import (
	"errors"

	"github.com/aerolink/simbridge/sim/protocol"
	"github.com/aerolink/simbridge/sim/state"
)

// dispatch routes a decoded envelope to its typed callback. Matching is
// exact and case-sensitive; Error and error are the two accepted spellings
// of the error type. Unrecognized types go to OnUnhandled and are otherwise
// ignored so newer peers can send frames older bridges do not understand.
func (s *Server) dispatch(env protocol.Envelope) {
	switch env.Type {
	case protocol.TypeAircraftData:
		if env.Data == nil {
			return
		}
		if s.callbacks.OnAircraftData != nil {
			s.callbacks.OnAircraftData(protocol.AircraftPayload(env.Data))
		}

	case protocol.TypeStatus:
		if env.Data == nil {
			return
		}
		var update state.Update
		if err := protocol.DecodeData(env.Data, &update); err != nil {
			// A Status payload that cannot even round-trip as an object
			// carries nothing mergeable.
			return
		}
		snapshot := s.tracker.Merge(update)
		if s.callbacks.OnStatus != nil {
			s.callbacks.OnStatus(snapshot)
		}

	case protocol.TypePong:
		if env.Data == nil {
			return
		}
		var pong protocol.PongResponse
		if err := protocol.DecodeData(env.Data, &pong); err != nil {
			return
		}
		if s.callbacks.OnPong != nil {
			s.callbacks.OnPong(pong)
		}

	case protocol.TypeError, protocol.TypeErrorLower:
		s.reportError(errors.New(protocol.ErrorMessage(env.Data)))

	default:
		if s.callbacks.OnUnhandled != nil {
			s.callbacks.OnUnhandled(env)
		}
	}
}
