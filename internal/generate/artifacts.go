package generate

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Artifact is a generated document held in memory for download. The store
// never proactively releases artifacts; they live until the process ends,
// mirroring the session-lifetime ownership of the download reference.
type Artifact struct {
	ID          uuid.UUID
	Filename    string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// ArtifactStore keeps generated artifacts addressable by ID.
type ArtifactStore struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Artifact
}

// NewArtifactStore creates an empty artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{byID: make(map[uuid.UUID]*Artifact)}
}

// Put stores a rendered artifact and assigns it a download reference. The
// filename follows the backend's convention: <doc_type>_<8 hex chars>.pdf.
func (s *ArtifactStore) Put(docType string, data []byte, contentType string) *Artifact {
	id := uuid.New()
	art := &Artifact{
		ID:          id,
		Filename:    docType + "_" + id.String()[:8] + ".pdf",
		ContentType: contentType,
		Data:        data,
		CreatedAt:   time.Now(),
	}
	s.mu.Lock()
	s.byID[id] = art
	s.mu.Unlock()
	return art
}

// Get returns the artifact with the given ID, if present.
func (s *ArtifactStore) Get(id uuid.UUID) (*Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	art, ok := s.byID[id]
	return art, ok
}

// Count returns the number of stored artifacts.
func (s *ArtifactStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
