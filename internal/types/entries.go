package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ExperienceEntry represents one work experience item in the resume
// experience collection.
type ExperienceEntry struct {
	Title   string   `json:"title" validate:"required"`
	Company string   `json:"company" validate:"required"`
	Period  string   `json:"period"`
	Bullets []string `json:"bullets"`
}

// ProjectEntry represents one project item in the resume projects collection.
type ProjectEntry struct {
	Name        string `json:"name" validate:"required"`
	TechStack   string `json:"tech_stack"`
	Description string `json:"description"`
}

// EducationEntry represents one education item. Grade may be empty but is
// always serialized so templates can reference it unconditionally.
type EducationEntry struct {
	Degree    string `json:"degree" validate:"required"`
	Institute string `json:"institute"`
	Year      string `json:"year"`
	Grade     string `json:"grade"`
}

// Collections holds the five editable collections backing the repeatable
// resume sections. Ordering is display order.
type Collections struct {
	Skills       []string          `json:"skills"`
	Achievements []string          `json:"achievements"`
	Experience   []ExperienceEntry `json:"experience"`
	Projects     []ProjectEntry    `json:"projects"`
	Education    []EducationEntry  `json:"education"`
}

// Validate validates the ExperienceEntry using the validator.
func (e *ExperienceEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// Validate validates the ProjectEntry using the validator.
func (e *ProjectEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// Validate validates the EducationEntry using the validator.
func (e *EducationEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// SplitBullets derives bullet lines from free text: one bullet per line,
// blank lines discarded.
func SplitBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}
