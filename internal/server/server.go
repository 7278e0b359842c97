package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"geoseal/internal/device"
	"geoseal/internal/domain"
	"geoseal/internal/services/messages"
	"geoseal/internal/store"
	"geoseal/pkg/response"
)

const version = "0.1.0"

// Server exposes the drop service over HTTP.
type Server struct {
	addr       string
	messages   domain.MessageService
	devices    *device.Registry
	hub        *Hub
	httpServer *http.Server
}

// New creates a server bound to addr.
func New(addr string, svc domain.MessageService, devices *device.Registry) *Server {
	return &Server{
		addr:     addr,
		messages: svc,
		devices:  devices,
		hub:      NewHub(),
	}
}

// Router builds the HTTP routing table. Split out from Start so tests can
// drive handlers through httptest without binding a port.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/messages", s.handleStoreMessage).Methods("POST")
	api.HandleFunc("/messages", s.handleListMessages).Methods("GET")
	api.HandleFunc("/messages/{id}", s.handleGetMessage).Methods("GET")
	api.HandleFunc("/messages/{id}", s.handleDeleteMessage).Methods("DELETE")
	api.HandleFunc("/messages/{id}/unlock", s.handleUnlock).Methods("POST")
	api.HandleFunc("/devices", s.handleRegisterDevice).Methods("POST")
	api.HandleFunc("/status", s.handleStatus).Methods("GET")

	router.HandleFunc("/ws/presence", s.hub.HandlePresence)

	return router
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}
	log.Printf("listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the presence hub.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleStoreMessage(w http.ResponseWriter, r *http.Request) {
	var req storeMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "malformed request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	id, err := s.messages.Store(req.toDomain())
	if err != nil {
		if errors.Is(err, messages.ErrInvalidBinding) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, store.ErrDuplicateID) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "store failed")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"id": string(id)})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	stored, err := s.messages.List()
	if err != nil {
		response.InternalError(w, "list failed")
		return
	}

	out := make([]storedMessageResponse, 0, len(stored))
	for _, m := range stored {
		out = append(out, toStoredResponse(m))
	}
	response.JSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	id := domain.MessageID(mux.Vars(r)["id"])

	message, ok, err := s.messages.Fetch(id)
	if err != nil {
		response.InternalError(w, "fetch failed")
		return
	}
	if !ok {
		response.NotFound(w, "message not found")
		return
	}
	response.JSON(w, http.StatusOK, toStoredResponse(message))
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := domain.MessageID(mux.Vars(r)["id"])

	if err := s.messages.Delete(id); err != nil {
		response.InternalError(w, "delete failed")
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"id": string(id)})
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	id := domain.MessageID(mux.Vars(r)["id"])

	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "malformed request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := s.messages.Unlock(id, req.toDomain())
	if err != nil {
		if errors.Is(err, messages.ErrNotFound) {
			response.NotFound(w, "message not found")
			return
		}
		response.InternalError(w, "unlock failed")
		return
	}

	// Denials are well-formed outcomes, not errors. The caller gets the
	// reason and, past the geofence stage, the measured distance.
	response.JSON(w, http.StatusOK, result)
}

func (s *Server) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "malformed request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var key domain.Ed25519Public
	copy(key[:], req.PublicKey)

	if err := s.devices.Register(domain.DeviceID(req.DeviceID), key); err != nil {
		if errors.Is(err, device.ErrKeyMismatch) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "register failed")
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"device_id": req.DeviceID})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"version": version,
		"devices": s.devices.Count(),
		"peers":   s.hub.PeerCount(),
	})
}
