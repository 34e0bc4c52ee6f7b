package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/docgen-client/internal/render"
	"github.com/jonathan/docgen-client/internal/session"
	"github.com/jonathan/docgen-client/internal/types"
)

// CreateSessionRequest represents the request body for POST /sessions
type CreateSessionRequest struct {
	DocType string `json:"doc_type,omitempty"`
}

// SessionResponse represents the full session state returned after every
// read or mutation. Lists carries rendered markup for all five collections,
// refreshed on every response regardless of which collection changed.
type SessionResponse struct {
	SessionID   string                   `json:"session_id"`
	DocType     string                   `json:"doc_type"`
	Mode        string                   `json:"mode"`
	Fields      map[string]string        `json:"fields"`
	Collections types.Collections        `json:"collections"`
	Lists       map[string]string        `json:"lists"`
	Generation  session.GenerationStatus `json:"generation"`
}

// sessionResponse builds the full state snapshot for a session.
func (s *Server) sessionResponse(sess *session.Session) SessionResponse {
	cols := sess.Snapshot()
	return SessionResponse{
		SessionID:   sess.ID.String(),
		DocType:     sess.DocType(),
		Mode:        sess.Mode(),
		Fields:      sess.Fields(),
		Collections: cols,
		Lists:       render.Lists(cols),
		Generation:  sess.Generation(),
	}
}

// getSession resolves the {id} path value to a live session. It writes the
// error response itself and returns nil when resolution fails.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) *session.Session {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID: "+r.PathValue("id"))
		return nil
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		err := &ErrSessionNotFound{SessionID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil
	}
	return sess
}

// handleCreateSession starts a new editing session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	sess, err := s.sessions.Create(req.DocType)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.sessionResponse(sess))
}

// handleGetSession returns the full session state
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleDeleteSession discards a session; the page session is over
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID: "+r.PathValue("id"))
		return
	}
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSetFields merges scalar input edits into the session
func (s *Server) handleSetFields(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	sess.SetFields(fields)
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleSetDocType switches the session's document type
func (s *Server) handleSetDocType(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		DocType string `json:"doc_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := sess.SetDocType(req.DocType); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleSetMode switches the session's creation mode
func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := sess.SetMode(req.Mode); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}
