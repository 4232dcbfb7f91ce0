package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/Cyclone1070/compassgenie/internal/agent"
	"github.com/Cyclone1070/compassgenie/internal/agent/models"
)

// sessionHeader lets clients thread a conversation across requests. A fresh
// ULID is minted when the header is absent.
const sessionHeader = "X-Session-ID"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if !req.Location.Valid() {
		writeError(w, http.StatusBadRequest, "location must be a valid lat/lng pair")
		return
	}

	var image []byte
	if req.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid image_base64: %v", err))
			return
		}
		image = decoded
	}

	sessionID := strings.TrimSpace(r.Header.Get(sessionHeader))
	if sessionID == "" {
		sessionID = ulid.Make().String()
	}

	result, err := s.runner.RunTurn(r.Context(), models.TurnRequest{
		Query:     req.Query,
		Image:     image,
		ImageMIME: req.ImageMIME,
		Location:  req.Location,
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, agent.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, agent.ErrUnavailable.Error())
			return
		}
		s.logger.Error("turn failed", "session", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		ResponseText: result.ResponseText,
		MapData:      result.MapData,
		SessionID:    sessionID,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
