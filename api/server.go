package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aerolink/simbridge/sim/status"
	"github.com/aerolink/simbridge/transport/websocket"
)

// Server represents the REST API server in front of the bridge.
type Server struct {
	bridge *websocket.Server
	router *mux.Router
}

// NewServer creates a new API server wired to the given bridge.
func NewServer(bridge *websocket.Server) *Server {
	s := &Server{
		bridge: bridge,
		router: mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Bridge state
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/status", s.handleStatus).Methods("GET")

	// Status taxonomy
	api.HandleFunc("/status/codes", s.handleListCodes).Methods("GET")
	api.HandleFunc("/status/codes/{code}", s.handleDescribeCode).Methods("GET")

	// Outbound requests to the simulator client
	api.HandleFunc("/request/aircraft-data", s.handleRequestAircraftData).Methods("POST")
	api.HandleFunc("/request/status", s.handleRequestStatus).Methods("POST")
	api.HandleFunc("/ping", s.handlePing).Methods("POST")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// Bridge state handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"peer_attached": s.bridge.PeerAttached(),
		"simulator":     s.bridge.Status(),
	})
}

// Status taxonomy handlers

type codeInfo struct {
	Code        status.Code     `json:"code"`
	Known       bool            `json:"known"`
	Category    status.Category `json:"category"`
	Description string          `json:"description"`
}

func describeCode(code status.Code) codeInfo {
	return codeInfo{
		Code:        code,
		Known:       status.IsKnown(code),
		Category:    status.CategoryOf(code),
		Description: status.Description(code),
	}
}

func (s *Server) handleListCodes(w http.ResponseWriter, r *http.Request) {
	codes := status.Codes()
	infos := make([]codeInfo, 0, len(codes))
	for _, code := range codes {
		infos = append(infos, describeCode(code))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(infos),
		"codes": infos,
	})
}

func (s *Server) handleDescribeCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := status.Code(vars["code"])

	// Any code is describable: unknown codes get the deterministic fallback
	// rather than a 404, mirroring the taxonomy contract.
	respondJSON(w, http.StatusOK, describeCode(code))
}

// Outbound request handlers

func (s *Server) respondSendResult(w http.ResponseWriter, sent bool) {
	if !sent {
		respondError(w, http.StatusConflict, "no simulator client connected")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

func (s *Server) handleRequestAircraftData(w http.ResponseWriter, r *http.Request) {
	s.respondSendResult(w, s.bridge.RequestAircraftData())
}

func (s *Server) handleRequestStatus(w http.ResponseWriter, r *http.Request) {
	s.respondSendResult(w, s.bridge.RequestSimulatorStatus())
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	s.respondSendResult(w, s.bridge.Ping())
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.bridge.ServeWS(w, r)
}
