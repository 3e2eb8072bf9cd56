package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/abhisek/quizify/internal/knowledge"
	"github.com/abhisek/quizify/internal/quizgen"
	"github.com/abhisek/quizify/internal/session"
	"github.com/go-chi/chi/v5"
)

// eventRequest is the body of POST /api/sessions/{id}/events.
type eventRequest struct {
	Type    string `json:"type"`
	Ordinal int    `json:"ordinal"`
	Option  string `json:"option"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ls := s.sessions.Create()
	s.log.Info("session created", "session_id", ls.id)
	writeJSON(w, http.StatusCreated, newSessionView(ls.id, ls.machine.Snapshot()))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ls := s.lookupSession(w, r)
	if ls == nil {
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(ls.id, ls.machine.Snapshot()))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.sessions.Delete(id) {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionExtract(w http.ResponseWriter, r *http.Request) {
	ls := s.lookupSession(w, r)
	if ls == nil {
		return
	}

	var req quizgen.Request
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	req, err := quizgen.ValidateRequest(req, s.opts.MaxTextBytes)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ticket, err := ls.machine.Begin(req)
	if err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}

	go s.runExtraction(ls, ticket, req)

	writeJSON(w, http.StatusAccepted, newSessionView(ls.id, ls.machine.Snapshot()))
}

// runExtraction calls the generator outside any request and delivers the
// outcome to the session's machine.
func (s *Server) runExtraction(ls *liveSession, ticket session.Ticket, req quizgen.Request) {
	ctx := ls.ctx
	if s.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.GenerationTimeout)
		defer cancel()
	}

	doc, genErr := s.gen.Generate(ctx, req)
	if err := ls.machine.Complete(ticket, doc, genErr); err != nil {
		s.log.Debug("extraction result dropped", "session_id", ls.id, "error", err)
		return
	}
	if genErr != nil {
		s.log.Warn("session extraction failed", "session_id", ls.id, "error", genErr)
		return
	}
	s.log.Info("session extraction complete",
		"session_id", ls.id,
		"concepts", len(doc.Concepts),
		"questions", len(doc.Quiz),
	)
}

func (s *Server) handleSessionEvent(w http.ResponseWriter, r *http.Request) {
	ls := s.lookupSession(w, r)
	if ls == nil {
		return
	}

	var body eventRequest
	if err := decodeJSON(r, &body); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ev, err := parseEvent(body)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := ls.machine.Dispatch(ev); err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, newSessionView(ls.id, ls.machine.Snapshot()))
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) *liveSession {
	ls := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if ls == nil {
		jsonError(w, "session not found", http.StatusNotFound)
	}
	return ls
}

// parseEvent maps a client event onto a session event. Extraction
// lifecycle events are not accepted here.
func parseEvent(body eventRequest) (session.Event, error) {
	switch body.Type {
	case "advance":
		return session.AdvanceRequested{}, nil
	case "select":
		opt := knowledge.Option(strings.ToUpper(strings.TrimSpace(body.Option)))
		if !opt.Valid() {
			return nil, fmt.Errorf("invalid option %q: must be A, B, C or D", body.Option)
		}
		if body.Ordinal < 1 {
			return nil, fmt.Errorf("invalid ordinal %d", body.Ordinal)
		}
		return session.SelectOption{Ordinal: body.Ordinal, Option: opt}, nil
	case "submit":
		return session.SubmitQuiz{}, nil
	case "attempt-again":
		return session.AttemptAgain{}, nil
	case "review":
		return session.ReviewRequested{}, nil
	case "back":
		return session.BackToResults{}, nil
	case "reset":
		return session.Reset{}, nil
	case "":
		return nil, errors.New("event type is required")
	default:
		return nil, fmt.Errorf("unknown event type %q", body.Type)
	}
}
