package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/karimJD/ws-backend/relay"
	"github.com/karimJD/ws-backend/transport/websocket"
)

// Server represents the REST API server. It is the HTTP collaborator of the
// relay: it injects server-initiated broadcasts and hosts the /ws upgrade.
type Server struct {
	relay  *relay.Relay
	ws     *websocket.Handler
	router *mux.Router
}

// NewServer creates a new API server bound to the relay.
func NewServer(r *relay.Relay, ws *websocket.Handler) *Server {
	s := &Server{
		relay:  r,
		ws:     ws,
		router: mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/status", s.handleStatus).Methods("GET")

	// State injection endpoints; each results in a broadcast to every
	// connected client.
	api.HandleFunc("/table", s.handleSendTable).Methods("POST")
	api.HandleFunc("/speed", s.handleSendSpeed).Methods("POST")
	api.HandleFunc("/game/start", s.handleSendGameStart).Methods("POST")
	api.HandleFunc("/products", s.handleSendProducts).Methods("POST")
	api.HandleFunc("/objects/sorted", s.handleSendSortedObjects).Methods("POST")
	api.HandleFunc("/objects/unsorted", s.handleSendUnsortedObjects).Methods("POST")
	api.HandleFunc("/errors", s.handleSendErrors).Methods("POST")
	api.HandleFunc("/zones/pickup", s.handleSendPickupFromZone).Methods("POST")

	// WebSocket
	s.router.Handle("/ws", s.ws)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondDelivered(w http.ResponseWriter, delivered int) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"delivered": delivered,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"connections": s.relay.Count(),
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Injection Handlers

func (s *Server) handleSendTable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondDelivered(w, s.relay.SendTable(req.Value))
}

func (s *Server) handleSendSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	delivered, err := s.relay.SendSpeed(req.Value)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondDelivered(w, delivered)
}

func (s *Server) handleSendGameStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondDelivered(w, s.relay.SendGameStart(req.Value))
}

func (s *Server) handleSendProducts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondDelivered(w, s.relay.SendProducts(req.Type))
}

func (s *Server) handleSendSortedObjects(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondDelivered(w, s.relay.SendSortedObjects(req.Type))
}

func (s *Server) handleSendUnsortedObjects(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondDelivered(w, s.relay.SendUnsortedObjects(req.Type))
}

func (s *Server) handleSendErrors(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	delivered, err := s.relay.SendErrors(req.Count)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondDelivered(w, delivered)
}

func (s *Server) handleSendPickupFromZone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Zone string `json:"zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	delivered, err := s.relay.SendPickupFromZone(req.Zone)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondDelivered(w, delivered)
}
