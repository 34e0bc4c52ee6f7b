package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docgen-client/internal/backend"
	"github.com/jonathan/docgen-client/internal/session"
	"github.com/jonathan/docgen-client/internal/types"
)

// testBackend is a stub generation backend capturing the last payload.
type testBackend struct {
	mu       sync.Mutex
	payloads []types.GenerationPayload

	status      int
	body        []byte
	contentType string
	block       chan struct{} // when set, handler waits before responding
}

func (tb *testBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p types.GenerationPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		tb.mu.Lock()
		tb.payloads = append(tb.payloads, p)
		tb.mu.Unlock()

		if tb.block != nil {
			<-tb.block
		}
		if tb.contentType != "" {
			w.Header().Set("Content-Type", tb.contentType)
		}
		if tb.status != 0 {
			w.WriteHeader(tb.status)
		}
		_, _ = w.Write(tb.body)
	})
}

func (tb *testBackend) lastPayload(t *testing.T) types.GenerationPayload {
	t.Helper()
	tb.mu.Lock()
	defer tb.mu.Unlock()
	require.NotEmpty(t, tb.payloads)
	return tb.payloads[len(tb.payloads)-1]
}

func newTestOrchestrator(t *testing.T, tb *testBackend) (*Orchestrator, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(tb.handler())
	t.Cleanup(srv.Close)

	client, err := backend.New(srv.URL, nil)
	require.NoError(t, err)
	return New(client, NewArtifactStore()), srv
}

func resumeSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New(types.DocTypeResume)
	require.NoError(t, err)
	sess.SetFields(map[string]string{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
	})
	sess.SetField(session.FieldSkillInput, "Go")
	require.NoError(t, sess.Add(session.CollectionSkills))
	return sess
}

func TestGenerate_Success(t *testing.T) {
	tb := &testBackend{body: []byte("%PDF-1.4 fake"), contentType: "application/pdf"}
	orch, _ := newTestOrchestrator(t, tb)
	sess := resumeSession(t)

	art, err := orch.Generate(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.4 fake"), art.Data)
	assert.Equal(t, "application/pdf", art.ContentType)
	assert.Contains(t, art.Filename, "resume_")
	assert.Contains(t, art.Filename, ".pdf")

	status := sess.Generation()
	assert.Equal(t, session.GenSucceeded, status.State)
	assert.Equal(t, art.ID.String(), status.ArtifactID)

	stored, ok := orch.Artifacts().Get(art.ID)
	require.True(t, ok)
	assert.Same(t, art, stored)
}

func TestGenerate_ManualModeOmitsAIContext(t *testing.T) {
	tb := &testBackend{body: []byte("pdf")}
	orch, _ := newTestOrchestrator(t, tb)
	sess := resumeSession(t)
	// Even with context text present, manual mode never sends it.
	sess.SetField(session.FieldAIContext, "make it fancy")

	_, err := orch.Generate(context.Background(), sess)
	require.NoError(t, err)

	payload := tb.lastPayload(t)
	assert.False(t, payload.UseAI)
	assert.Nil(t, payload.AIContext)
	assert.False(t, payload.ReturnDocx)
}

func TestGenerate_GuidedModeSendsAIContext(t *testing.T) {
	tb := &testBackend{body: []byte("pdf")}
	orch, _ := newTestOrchestrator(t, tb)
	sess := resumeSession(t)
	require.NoError(t, sess.SetMode(types.ModeGuided))
	sess.SetField(session.FieldAIContext, "formal tone")

	_, err := orch.Generate(context.Background(), sess)
	require.NoError(t, err)

	payload := tb.lastPayload(t)
	assert.True(t, payload.UseAI)
	require.NotNil(t, payload.AIContext)
	assert.Equal(t, "formal tone", *payload.AIContext)
}

func TestGenerate_GuidedModeEmptyContextStillSent(t *testing.T) {
	tb := &testBackend{body: []byte("pdf")}
	orch, _ := newTestOrchestrator(t, tb)
	sess := resumeSession(t)
	require.NoError(t, sess.SetMode(types.ModeGuided))

	_, err := orch.Generate(context.Background(), sess)
	require.NoError(t, err)

	payload := tb.lastPayload(t)
	require.NotNil(t, payload.AIContext)
	assert.Equal(t, "", *payload.AIContext)
}

// TestGenerate_FailureLeavesStateUntouched covers the failure scenario: the
// backend rejects with a detail message, the session keeps its collections
// and fields, the message is surfaced exactly, and the busy gate reopens.
func TestGenerate_FailureLeavesStateUntouched(t *testing.T) {
	tb := &testBackend{status: http.StatusInternalServerError, body: []byte(`{"detail":"Generation failed"}`)}
	orch, _ := newTestOrchestrator(t, tb)
	sess := resumeSession(t)
	before := sess.Snapshot()
	beforeFields := sess.Fields()

	_, err := orch.Generate(context.Background(), sess)
	require.Error(t, err)

	status := sess.Generation()
	assert.Equal(t, session.GenFailed, status.State)
	assert.Equal(t, "Generation failed", status.Error)

	assert.Equal(t, before, sess.Snapshot())
	assert.Equal(t, beforeFields, sess.Fields())
	// Trigger restored: a new submission can begin.
	assert.True(t, sess.TryBeginGeneration())
	sess.EndGeneration(session.GenerationStatus{State: session.GenIdle})
}

func TestGenerate_FailureWithoutDetailUsesFallback(t *testing.T) {
	tb := &testBackend{status: http.StatusBadGateway, body: []byte("upstream exploded")}
	orch, _ := newTestOrchestrator(t, tb)
	sess := resumeSession(t)

	_, err := orch.Generate(context.Background(), sess)
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, sess.Generation().Error)
}

func TestGenerate_BusyGateRejectsConcurrentSubmission(t *testing.T) {
	tb := &testBackend{body: []byte("pdf"), block: make(chan struct{})}
	orch, _ := newTestOrchestrator(t, tb)
	sess := resumeSession(t)

	done := make(chan error, 1)
	go func() {
		_, err := orch.Generate(context.Background(), sess)
		done <- err
	}()

	// Wait until the first submission is in flight.
	require.Eventually(t, func() bool {
		return sess.Generation().State == session.GenSubmitting
	}, 2*time.Second, 10*time.Millisecond)

	_, err := orch.Generate(context.Background(), sess)
	assert.ErrorIs(t, err, ErrBusy)

	close(tb.block)
	require.NoError(t, <-done)
	assert.Equal(t, session.GenSucceeded, sess.Generation().State)
}

func TestBuildPayload_FieldsMatchDocType(t *testing.T) {
	sess, err := session.New(types.DocTypeLetter)
	require.NoError(t, err)
	sess.SetFields(map[string]string{
		"name":    "Ada",
		"subject": "Hello",
		"summary": "resume-only text",
	})

	payload, err := BuildPayload(sess)
	require.NoError(t, err)
	assert.Equal(t, types.DocTypeLetter, payload.DocType)
	assert.Equal(t, "Hello", payload.Fields["subject"])
	assert.NotContains(t, payload.Fields, "summary")
	assert.NotContains(t, payload.Fields, "skills")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "boom", UserMessage(&backend.Error{StatusCode: 500, Detail: "boom"}))
	assert.Equal(t, FallbackMessage, UserMessage(&backend.Error{StatusCode: 502}))
	assert.Equal(t, "Please enter a skill.", UserMessage(&session.ValidationError{Message: "Please enter a skill."}))
	assert.Equal(t, FallbackMessage, UserMessage(context.DeadlineExceeded))
}

func TestArtifactStore(t *testing.T) {
	store := NewArtifactStore()
	art := store.Put("letter", []byte("data"), "application/pdf")

	assert.Regexp(t, `^letter_[0-9a-f]{8}\.pdf$`, art.Filename)
	assert.Equal(t, 1, store.Count())

	got, ok := store.Get(art.ID)
	require.True(t, ok)
	assert.Same(t, art, got)
}
