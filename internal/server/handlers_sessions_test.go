package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docgen-client/internal/session"
	"github.com/jonathan/docgen-client/internal/types"
)

// createSession registers a session directly with the manager so handler
// tests can target it by ID.
func createSession(t *testing.T, s *Server, docType string) *session.Session {
	t.Helper()
	sess, err := s.sessions.Create(docType)
	require.NoError(t, err)
	return sess
}

func TestHandleGetSession_InvalidID(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()
	s.handleGetSession(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid session ID")
}

func TestHandleGetSession_NotFound(t *testing.T) {
	s := newTestServer(t, nil)

	id := "123e4567-e89b-12d3-a456-426614174000"
	req := httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	s.handleGetSession(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleSetFields(t *testing.T) {
	s := newTestServer(t, nil)
	sess := createSession(t, s, types.DocTypeResume)

	body := `{"name":"Ada Lovelace","email":"ada@example.com"}`
	req := httptest.NewRequest(http.MethodPut, "/sessions/"+sess.ID.String()+"/fields", strings.NewReader(body))
	req.SetPathValue("id", sess.ID.String())
	w := httptest.NewRecorder()
	s.handleSetFields(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeSession(t, w.Body.Bytes())
	assert.Equal(t, "Ada Lovelace", resp.Fields["name"])
	assert.Equal(t, "Ada Lovelace", sess.Field("name"))
}

func TestHandleSetDocType(t *testing.T) {
	s := newTestServer(t, nil)
	sess := createSession(t, s, types.DocTypeResume)

	req := httptest.NewRequest(http.MethodPut, "/sessions/"+sess.ID.String()+"/doc-type", strings.NewReader(`{"doc_type":"Letter"}`))
	req.SetPathValue("id", sess.ID.String())
	w := httptest.NewRecorder()
	s.handleSetDocType(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// Doc type is normalized on the way in.
	assert.Equal(t, types.DocTypeLetter, sess.DocType())
}

func TestHandleSetDocType_Invalid(t *testing.T) {
	s := newTestServer(t, nil)
	sess := createSession(t, s, types.DocTypeResume)

	req := httptest.NewRequest(http.MethodPut, "/sessions/"+sess.ID.String()+"/doc-type", strings.NewReader(`{"doc_type":"memo"}`))
	req.SetPathValue("id", sess.ID.String())
	w := httptest.NewRecorder()
	s.handleSetDocType(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, types.DocTypeResume, sess.DocType())
}

func TestHandleSetMode(t *testing.T) {
	s := newTestServer(t, nil)
	sess := createSession(t, s, types.DocTypeResume)

	req := httptest.NewRequest(http.MethodPut, "/sessions/"+sess.ID.String()+"/mode", strings.NewReader(`{"mode":"guided"}`))
	req.SetPathValue("id", sess.ID.String())
	w := httptest.NewRecorder()
	s.handleSetMode(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.ModeGuided, sess.Mode())

	req = httptest.NewRequest(http.MethodPut, "/sessions/"+sess.ID.String()+"/mode", strings.NewReader(`{"mode":"auto"}`))
	req.SetPathValue("id", sess.ID.String())
	w = httptest.NewRecorder()
	s.handleSetMode(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDeleteSession(t *testing.T) {
	s := newTestServer(t, nil)
	sess := createSession(t, s, types.DocTypeResume)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/"+sess.ID.String(), nil)
	req.SetPathValue("id", sess.ID.String())
	w := httptest.NewRecorder()
	s.handleDeleteSession(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	_, ok := s.sessions.Get(sess.ID)
	assert.False(t, ok)
}
