// Package generate drives the document generation request lifecycle: payload
// assembly from the session state, the single outbound submission, and the
// bookkeeping that keeps the session's trigger usable afterwards.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/docgen-client/internal/backend"
	"github.com/jonathan/docgen-client/internal/schema"
	"github.com/jonathan/docgen-client/internal/schemas"
	"github.com/jonathan/docgen-client/internal/session"
	"github.com/jonathan/docgen-client/internal/types"
)

// ErrBusy is returned when a generation is already in flight for the
// session. There is no queueing; the caller simply tries again later.
var ErrBusy = errors.New("generation already in progress")

// FallbackMessage is surfaced when a failure carries no message of its own.
const FallbackMessage = "Generation failed. Please try again."

// Orchestrator submits assembled payloads to the backend and stores the
// resulting artifacts.
type Orchestrator struct {
	client    *backend.Client
	artifacts *ArtifactStore
}

// New creates an orchestrator using the given backend client and artifact
// store.
func New(client *backend.Client, artifacts *ArtifactStore) *Orchestrator {
	return &Orchestrator{client: client, artifacts: artifacts}
}

// Artifacts returns the orchestrator's artifact store.
func (o *Orchestrator) Artifacts() *ArtifactStore {
	return o.artifacts
}

// Generate runs one submission for the session: acquire the busy gate, build
// and validate the payload, submit, store the artifact. The session's
// generation status always ends at Succeeded or Failed with the gate
// released, whatever path is taken. Collections and scalar fields are never
// mutated by a submission.
func (o *Orchestrator) Generate(ctx context.Context, sess *session.Session) (*Artifact, error) {
	if !sess.TryBeginGeneration() {
		return nil, ErrBusy
	}

	art, err := o.generate(ctx, sess)
	if err != nil {
		sess.EndGeneration(session.GenerationStatus{
			State: session.GenFailed,
			Error: UserMessage(err),
		})
		return nil, err
	}

	sess.EndGeneration(session.GenerationStatus{
		State:      session.GenSucceeded,
		ArtifactID: art.ID.String(),
	})
	return art, nil
}

func (o *Orchestrator) generate(ctx context.Context, sess *session.Session) (*Artifact, error) {
	payload, err := BuildPayload(sess)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	if err := schemas.ValidatePayload(encoded); err != nil {
		return nil, err
	}

	log.Printf("[generate] submitting %s payload (%d fields)", payload.DocType, len(payload.Fields))
	result, err := o.client.Generate(ctx, payload)
	if err != nil {
		return nil, err
	}

	art := o.artifacts.Put(payload.DocType, result.Data, result.ContentType)
	log.Printf("[generate] stored artifact %s (%d bytes)", art.Filename, len(art.Data))
	return art, nil
}

// BuildPayload assembles the outbound payload from the session's current
// state: document type, creation mode, scalar inputs, and collections. The
// AI context rides along only in guided mode; return_docx stays false, the
// backend's secondary format is not exposed.
func BuildPayload(sess *session.Session) (*types.GenerationPayload, error) {
	docType := types.NormalizeDocType(sess.DocType())
	if docType == "" {
		return nil, &session.ValidationError{Message: "Please select a document type."}
	}

	fields, err := schema.BuildFields(docType, sess.Fields(), sess.Snapshot())
	if err != nil {
		return nil, err
	}

	payload := &types.GenerationPayload{
		DocType: docType,
		Fields:  fields,
	}
	if sess.Mode() == types.ModeGuided {
		ctxText := sess.Field(session.FieldAIContext)
		payload.UseAI = true
		payload.AIContext = &ctxText
	}
	return payload, nil
}

// UserMessage maps an error to the message shown to the user. Backend
// failures surface their detail message verbatim; local validation errors
// carry their own wording; everything else falls back to a generic message.
func UserMessage(err error) string {
	var berr *backend.Error
	if errors.As(err, &berr) && berr.Detail != "" {
		return berr.Detail
	}
	var verr *session.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return FallbackMessage
}
