// Package session holds the volatile state for one document editing session:
// the scalar input fields, the five editable collections, and the generation
// lifecycle status. Nothing in this package touches disk or network; a
// session lives exactly as long as the surface that created it.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/docgen-client/internal/types"
)

// Input field names for the repeatable-section forms. The base identity and
// per-document-type scalar inputs use their payload key as the input name.
const (
	FieldSkillInput       = "skill_input"
	FieldAchievementInput = "achievement_input"
	FieldExpTitle         = "exp_title"
	FieldExpCompany       = "exp_company"
	FieldExpPeriod        = "exp_period"
	FieldExpPoints        = "exp_points"
	FieldProjName         = "proj_name"
	FieldProjStack        = "proj_stack"
	FieldProjDesc         = "proj_desc"
	FieldEduDegree        = "edu_degree"
	FieldEduInstitute     = "edu_institute"
	FieldEduYear          = "edu_year"
	FieldEduGrade         = "edu_grade"
	FieldAIContext        = "ai_context"
)

// GenState is the generation lifecycle state of a session.
type GenState string

// Generation lifecycle states: Idle -> Submitting -> {Succeeded, Failed},
// then back to Idle-capable once the busy gate is released.
const (
	GenIdle       GenState = "idle"
	GenSubmitting GenState = "submitting"
	GenSucceeded  GenState = "succeeded"
	GenFailed     GenState = "failed"
)

// GenerationStatus is the externally visible generation state of a session.
type GenerationStatus struct {
	State      GenState `json:"state"`
	Error      string   `json:"error,omitempty"`
	ArtifactID string   `json:"artifact_id,omitempty"`
}

// Session is the explicit state container for one editing session. All
// mutations are serialized through the internal mutex, so collection state
// can never be observed mid-update.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu          sync.Mutex
	docType     string
	mode        string
	fields      map[string]string
	collections types.Collections
	gen         GenerationStatus
	busy        *semaphore.Weighted
}

// New creates a session for the given document type. An empty docType
// defaults to resume, matching the initial state of the form.
func New(docType string) (*Session, error) {
	docType = types.NormalizeDocType(docType)
	if docType == "" {
		docType = types.DocTypeResume
	}
	if !types.ValidDocType(docType) {
		return nil, &ValidationError{Message: "Unknown document type: " + docType}
	}

	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		docType:   docType,
		mode:      types.ModeManual,
		fields:    make(map[string]string),
		gen:       GenerationStatus{State: GenIdle},
		busy:      semaphore.NewWeighted(1),
	}, nil
}

// DocType returns the currently selected document type.
func (s *Session) DocType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docType
}

// SetDocType switches the selected document type.
func (s *Session) SetDocType(t string) error {
	t = types.NormalizeDocType(t)
	if !types.ValidDocType(t) {
		return &ValidationError{Message: "Unknown document type: " + t}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docType = t
	return nil
}

// Mode returns the current creation mode.
func (s *Session) Mode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches between manual and guided creation.
func (s *Session) SetMode(m string) error {
	if !types.ValidMode(m) {
		return &ValidationError{Message: "Unknown creation mode: " + m}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	return nil
}

// Field returns the current value of a scalar input field.
func (s *Session) Field(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[name]
}

// SetField stores a single scalar input value.
func (s *Session) SetField(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[name] = value
}

// SetFields merges a batch of scalar input edits.
func (s *Session) SetFields(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, value := range values {
		s.fields[name] = value
	}
}

// Fields returns a copy of all scalar input values.
func (s *Session) Fields() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.fields))
	for name, value := range s.fields {
		out[name] = value
	}
	return out
}

// Snapshot returns a deep copy of all five collections in display order.
func (s *Session) Snapshot() types.Collections {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() types.Collections {
	snap := types.Collections{
		Skills:       append([]string(nil), s.collections.Skills...),
		Achievements: append([]string(nil), s.collections.Achievements...),
		Projects:     append([]types.ProjectEntry(nil), s.collections.Projects...),
		Education:    append([]types.EducationEntry(nil), s.collections.Education...),
	}
	for _, exp := range s.collections.Experience {
		exp.Bullets = append([]string(nil), exp.Bullets...)
		snap.Experience = append(snap.Experience, exp)
	}
	return snap
}

// TryBeginGeneration attempts to acquire the single-submission busy gate.
// It returns false when a generation is already in flight.
func (s *Session) TryBeginGeneration() bool {
	if !s.busy.TryAcquire(1) {
		return false
	}
	s.mu.Lock()
	s.gen = GenerationStatus{State: GenSubmitting}
	s.mu.Unlock()
	return true
}

// EndGeneration records the outcome of a submission and releases the busy
// gate. It must be called on every path out of a generation, success or
// failure, so the trigger is always restored.
func (s *Session) EndGeneration(status GenerationStatus) {
	s.mu.Lock()
	s.gen = status
	s.mu.Unlock()
	s.busy.Release(1)
}

// Generation returns the current generation status.
func (s *Session) Generation() GenerationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
