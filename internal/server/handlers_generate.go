package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/docgen-client/internal/generate"
)

// GenerateResponse represents a successful generation
type GenerateResponse struct {
	ArtifactID  string `json:"artifact_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	DownloadURL string `json:"download_url"`
}

// handleGenerate runs one submission for the session. A concurrent
// submission on the same session gets 409; the session's collections and
// fields are untouched on every failure path.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	art, err := s.orch.Generate(r.Context(), sess)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusConflict {
			s.errorResponse(w, status, err.Error())
			return
		}
		s.errorResponse(w, status, generate.UserMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		ArtifactID:  art.ID.String(),
		Filename:    art.Filename,
		ContentType: art.ContentType,
		Size:        len(art.Data),
		DownloadURL: "/artifacts/" + art.ID.String(),
	})
}

// handleGetArtifact streams a stored artifact for download
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid artifact ID: "+r.PathValue("id"))
		return
	}

	art, ok := s.orch.Artifacts().Get(id)
	if !ok {
		nfErr := &ErrArtifactNotFound{ArtifactID: id}
		s.errorResponse(w, HTTPStatus(nfErr), nfErr.Error())
		return
	}

	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Data)
}
