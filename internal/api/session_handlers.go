package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/hint"
	"github.com/abhisek/sqlchallenge/internal/logging"
	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var (
		topics     []schema.Topic
		categories []challenge.Category
		err        error
	)
	if len(req.Topics) > 0 {
		if topics, err = schema.ParseTopics(req.Topics); err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}
	if len(req.Categories) > 0 {
		if categories, err = challenge.ParseCategories(req.Categories); err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}

	sess := s.sessions.Create(topics, categories)
	respondJSON(w, http.StatusCreated, newSessionView(sess))
}

// session resolves the {id} route parameter, answering 404 itself when the
// session is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*challenge.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, newSessionView(sess))
}

func (s *Server) handleNextChallenge(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req challengeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if (req.Topic == "") != (req.Category == "") {
		respondError(w, http.StatusBadRequest, "validation_error", "topic and category must be given together")
		return
	}

	var (
		topic    schema.Topic
		category challenge.Category
		err      error
	)
	if req.Topic != "" {
		if topic, err = schema.ParseTopic(req.Topic); err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		if category, err = challenge.ParseCategory(req.Category); err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}

	var ch challenge.Challenge
	err = s.sessions.WithPractice(func() error {
		var err error
		if topic == "" {
			ch, err = sess.Next(r.Context())
		} else {
			ch, err = sess.Choose(r.Context(), topic, category)
		}
		return err
	})
	if err != nil {
		s.respondSelectionError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newChallengeView(ch))
}

func (s *Server) respondSelectionError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		gap        *challenge.TemplateNotFoundError
		ungradable *challenge.UngradableError
	)
	switch {
	case errors.As(err, &gap):
		logging.FromContext(r.Context()).Error("registry gap", "topic", gap.Topic, "category", gap.Category)
		respondError(w, http.StatusInternalServerError, "registry_gap", err.Error())
	case errors.As(err, &ungradable):
		respondError(w, http.StatusUnprocessableEntity, "ungradable", err.Error())
	case errors.Is(err, challenge.ErrNoCandidates):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		logging.FromContext(r.Context()).Error("failed to select challenge", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to prepare challenge")
	}
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeQuery(w, r)
	if !ok {
		return
	}

	var res *sqlexec.Result
	err := s.sessions.WithPractice(func() error {
		var err error
		res, err = sess.Run(r.Context(), req.Query)
		return err
	})
	if err != nil {
		var qe *sqlexec.QueryError
		if errors.As(err, &qe) {
			respondError(w, http.StatusUnprocessableEntity, "query_error", qe.Err.Error())
			return
		}
		logging.FromContext(r.Context()).Error("failed to run query", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to run query")
		return
	}

	respondJSON(w, http.StatusOK, newResultView(res))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeQuery(w, r)
	if !ok {
		return
	}

	var verdict *challenge.Verdict
	err := s.sessions.WithPractice(func() error {
		var err error
		verdict, err = sess.Submit(r.Context(), req.Query)
		return err
	})
	if errors.Is(err, challenge.ErrNoChallenge) {
		respondError(w, http.StatusConflict, "no_challenge", "request a challenge first")
		return
	}

	correct := err == nil && verdict.Correct
	outcome := challenge.Classify(correct, err)
	view := verdictView{
		Outcome: string(outcome),
		Correct: correct,
		Message: outcome.Message(),
	}
	if err != nil {
		view.Error = err.Error()
	}
	if verdict != nil {
		view.Result = newResultView(verdict.Submitted)
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if !s.hints.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "hints_disabled", hint.ErrDisabled.Error())
		return
	}

	var req hintRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	ch, ok := sess.Current()
	if !ok {
		respondError(w, http.StatusConflict, "no_challenge", "request a challenge first")
		return
	}

	h, err := s.hints.Hint(r.Context(), hint.Input{
		Challenge:    ch,
		Query:        req.Query,
		Outcome:      challenge.Outcome(req.Outcome),
		ErrorMessage: req.Error,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("hint request failed", "error", err)
		respondError(w, http.StatusBadGateway, "hint_unavailable", "could not get a hint, try again")
		return
	}

	respondJSON(w, http.StatusOK, hintView{Hint: h.Text, Concept: h.Concept})
}

func decodeQuery(w http.ResponseWriter, r *http.Request) (queryRequest, bool) {
	var req queryRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return req, false
	}
	if strings.TrimSpace(req.Query) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "query is required")
		return req, false
	}
	return req, true
}
