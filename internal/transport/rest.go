package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rpggio/stratdesk/internal/mcp"
)

// maxBodyBytes bounds request bodies; conversations carry whole messages.
const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

// errorBody is the JSON shape of every REST error.
type errorBody struct {
	Error *mcp.APIError `json:"error"`
}

func decodeBody[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return v, fmt.Errorf("%w: %v", errBadBody, err)
	}
	return v, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("write response failed", "error", err)
	}
}

// respondError maps err to a status code. Unmapped errors are logged and hidden.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBadBody) {
		s.respondJSON(w, http.StatusBadRequest, errorBody{&mcp.APIError{Code: "BAD_REQUEST", Message: err.Error(), Status: http.StatusBadRequest}})
		return
	}
	apiErr := mcp.MapError(err)
	if apiErr == nil {
		s.logger.Error("request failed", "error", err)
		apiErr = &mcp.APIError{Code: "INTERNAL", Message: "internal error", Status: http.StatusInternalServerError}
	}
	s.respondJSON(w, apiErr.Status, errorBody{apiErr})
}

// reply writes v with status, or the mapped error.
func (s *Server) reply(w http.ResponseWriter, status int, v any, err error) {
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, status, v)
}

// replyDeleted writes 204 on success.
func (s *Server) replyDeleted(w http.ResponseWriter, err error) {
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
