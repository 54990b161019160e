package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/sqlchallenge/internal/schema"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{Error: &apiError{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// decodeBody reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	var topics []topicView
	for _, t := range schema.Topics() {
		table, err := schema.ParseDDL(t.DDL())
		if err != nil {
			slog.Error("failed to parse topic DDL", "topic", t, "error", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to describe topics")
			return
		}
		topics = append(topics, topicView{Name: t.String(), Columns: table.ColumnNames()})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"topics": topics,
		"total":  len(topics),
	})
}

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	topic, err := schema.ParseTopic(chi.URLParam(r, "topic"))
	if err != nil {
		respondError(w, http.StatusNotFound, "topic_not_found", err.Error())
		return
	}
	rendered, err := schema.Render(topic)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to render schema")
		return
	}
	respondJSON(w, http.StatusOK, schemaView{
		Topic:  topic.String(),
		Schema: rendered,
		DDL:    topic.DDL(),
	})
}
