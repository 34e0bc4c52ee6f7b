package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/docgen-client/internal/backend"
	"github.com/jonathan/docgen-client/internal/generate"
	"github.com/jonathan/docgen-client/internal/session"
)

// ErrSessionNotFound indicates the referenced session does not exist (or has
// already been discarded).
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrArtifactNotFound indicates the referenced artifact does not exist.
type ErrArtifactNotFound struct {
	ArtifactID uuid.UUID
}

func (e *ErrArtifactNotFound) Error() string {
	return fmt.Sprintf("artifact not found: %s", e.ArtifactID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *session.ValidationError
		unknownColErr *session.ErrUnknownCollection
		rangeErr      *session.ErrIndexOutOfRange
		notFoundErr   *ErrSessionNotFound
		artifactErr   *ErrArtifactNotFound
		backendErr    *backend.Error
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &rangeErr):
		return http.StatusBadRequest
	case errors.As(err, &unknownColErr):
		return http.StatusNotFound
	case errors.As(err, &notFoundErr), errors.As(err, &artifactErr):
		return http.StatusNotFound
	case errors.Is(err, generate.ErrBusy):
		return http.StatusConflict
	case errors.As(err, &backendErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
