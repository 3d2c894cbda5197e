package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

// readyTimeout bounds the store ping behind /readyz.
const readyTimeout = 2 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   s.cfg.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := s.cfg.Ready.Ping(ctx); err != nil {
			s.log.Warn("readiness check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Hello from taskd!",
		"timestamp": s.cfg.Now().UTC().Format(time.RFC3339Nano),
		"method":    r.Method,
	})
}

type userResponse struct {
	Message string `json:"message"`
	User    struct {
		Name      string `json:"name"`
		ID        int    `json:"id"`
		CreatedAt string `json:"createdAt"`
	} `json:"user"`
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing name parameter")
		return
	}

	var resp userResponse
	resp.Message = "Hello, " + name + "!"
	resp.User.Name = name
	resp.User.ID = rand.IntN(1000)
	resp.User.CreatedAt = s.cfg.Now().UTC().Format(time.RFC3339Nano)
	writeJSON(w, http.StatusOK, resp)
}

type dataResponse struct {
	Success     bool            `json:"success"`
	Received    json.RawMessage `json:"received"`
	ProcessedAt string          `json:"processedAt"`
}

// handleData echoes any well-formed JSON body.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{
		Success:     true,
		Received:    json.RawMessage(body),
		ProcessedAt: s.cfg.Now().UTC().Format(time.RFC3339Nano),
	})
}
