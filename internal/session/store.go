package session

import (
	"strings"

	"github.com/jonathan/docgen-client/internal/types"
)

// Collection names for the five repeatable resume sections.
const (
	CollectionSkills       = "skills"
	CollectionAchievements = "achievements"
	CollectionExperience   = "experience"
	CollectionProjects     = "projects"
	CollectionEducation    = "education"
)

// CollectionNames lists the five collections in display order.
var CollectionNames = []string{
	CollectionSkills,
	CollectionAchievements,
	CollectionExperience,
	CollectionProjects,
	CollectionEducation,
}

// Add builds a new entry from the session's current scalar inputs for the
// named collection, validates it, and appends it at the end. On validation
// failure the collection and the inputs are left untouched and a
// *ValidationError carries the user-facing message. On success the source
// inputs are cleared.
func (s *Session) Add(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case CollectionSkills:
		return s.addText(&s.collections.Skills, FieldSkillInput, "Please enter a skill.")
	case CollectionAchievements:
		return s.addText(&s.collections.Achievements, FieldAchievementInput, "Please enter an achievement.")
	case CollectionExperience:
		return s.addExperience()
	case CollectionProjects:
		return s.addProject()
	case CollectionEducation:
		return s.addEducation()
	default:
		return &ErrUnknownCollection{Name: name}
	}
}

// Remove deletes the item at index from the named collection, shifting
// subsequent items down by one. An out-of-range index is a contract
// violation and mutates nothing.
func (s *Session) Remove(name string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.extract(name, index)
	return err
}

// Edit extracts the item at index, removing it from the collection, and
// copies its fields back into the corresponding scalar inputs for the user
// to modify. The extraction is destructive: a subsequent Add re-appends the
// item at the end, not at its original position.
func (s *Session) Edit(name string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.extract(name, index)
	if err != nil {
		return err
	}

	switch v := item.(type) {
	case string:
		if name == CollectionSkills {
			s.fields[FieldSkillInput] = v
		} else {
			s.fields[FieldAchievementInput] = v
		}
	case types.ExperienceEntry:
		s.fields[FieldExpTitle] = v.Title
		s.fields[FieldExpCompany] = v.Company
		s.fields[FieldExpPeriod] = v.Period
		s.fields[FieldExpPoints] = strings.Join(v.Bullets, "\n")
	case types.ProjectEntry:
		s.fields[FieldProjName] = v.Name
		s.fields[FieldProjStack] = v.TechStack
		s.fields[FieldProjDesc] = v.Description
	case types.EducationEntry:
		s.fields[FieldEduDegree] = v.Degree
		s.fields[FieldEduInstitute] = v.Institute
		s.fields[FieldEduYear] = v.Year
		s.fields[FieldEduGrade] = v.Grade
	}
	return nil
}

// List returns a copy of the named collection. The concrete type is
// []string for skills and achievements, and the entry slice type for the
// structured collections.
func (s *Session) List(name string) (any, error) {
	snap := s.Snapshot()
	switch name {
	case CollectionSkills:
		return snap.Skills, nil
	case CollectionAchievements:
		return snap.Achievements, nil
	case CollectionExperience:
		return snap.Experience, nil
	case CollectionProjects:
		return snap.Projects, nil
	case CollectionEducation:
		return snap.Education, nil
	default:
		return nil, &ErrUnknownCollection{Name: name}
	}
}

// Len returns the length of the named collection.
func (s *Session) Len(name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch name {
	case CollectionSkills:
		return len(s.collections.Skills), nil
	case CollectionAchievements:
		return len(s.collections.Achievements), nil
	case CollectionExperience:
		return len(s.collections.Experience), nil
	case CollectionProjects:
		return len(s.collections.Projects), nil
	case CollectionEducation:
		return len(s.collections.Education), nil
	default:
		return 0, &ErrUnknownCollection{Name: name}
	}
}

func (s *Session) addText(target *[]string, field, emptyMsg string) error {
	text := strings.TrimSpace(s.fields[field])
	if text == "" {
		return &ValidationError{Message: emptyMsg}
	}
	*target = append(*target, text)
	s.fields[field] = ""
	return nil
}

func (s *Session) addExperience() error {
	entry := types.ExperienceEntry{
		Title:   strings.TrimSpace(s.fields[FieldExpTitle]),
		Company: strings.TrimSpace(s.fields[FieldExpCompany]),
		Period:  strings.TrimSpace(s.fields[FieldExpPeriod]),
		Bullets: types.SplitBullets(s.fields[FieldExpPoints]),
	}
	if err := entry.Validate(); err != nil {
		return &ValidationError{Message: "Experience needs a title and a company."}
	}
	s.collections.Experience = append(s.collections.Experience, entry)
	s.clearFields(FieldExpTitle, FieldExpCompany, FieldExpPeriod, FieldExpPoints)
	return nil
}

func (s *Session) addProject() error {
	entry := types.ProjectEntry{
		Name:        strings.TrimSpace(s.fields[FieldProjName]),
		TechStack:   strings.TrimSpace(s.fields[FieldProjStack]),
		Description: strings.TrimSpace(s.fields[FieldProjDesc]),
	}
	if err := entry.Validate(); err != nil {
		return &ValidationError{Message: "Project needs a name."}
	}
	s.collections.Projects = append(s.collections.Projects, entry)
	s.clearFields(FieldProjName, FieldProjStack, FieldProjDesc)
	return nil
}

func (s *Session) addEducation() error {
	entry := types.EducationEntry{
		Degree:    strings.TrimSpace(s.fields[FieldEduDegree]),
		Institute: strings.TrimSpace(s.fields[FieldEduInstitute]),
		Year:      strings.TrimSpace(s.fields[FieldEduYear]),
		Grade:     strings.TrimSpace(s.fields[FieldEduGrade]),
	}
	if err := entry.Validate(); err != nil {
		return &ValidationError{Message: "Education needs a degree."}
	}
	s.collections.Education = append(s.collections.Education, entry)
	s.clearFields(FieldEduDegree, FieldEduInstitute, FieldEduYear, FieldEduGrade)
	return nil
}

// extract removes and returns the item at index. Callers hold the mutex.
func (s *Session) extract(name string, index int) (any, error) {
	switch name {
	case CollectionSkills:
		item, rest, err := removeAt(s.collections.Skills, name, index)
		if err != nil {
			return nil, err
		}
		s.collections.Skills = rest
		return item, nil
	case CollectionAchievements:
		item, rest, err := removeAt(s.collections.Achievements, name, index)
		if err != nil {
			return nil, err
		}
		s.collections.Achievements = rest
		return item, nil
	case CollectionExperience:
		item, rest, err := removeAt(s.collections.Experience, name, index)
		if err != nil {
			return nil, err
		}
		s.collections.Experience = rest
		return item, nil
	case CollectionProjects:
		item, rest, err := removeAt(s.collections.Projects, name, index)
		if err != nil {
			return nil, err
		}
		s.collections.Projects = rest
		return item, nil
	case CollectionEducation:
		item, rest, err := removeAt(s.collections.Education, name, index)
		if err != nil {
			return nil, err
		}
		s.collections.Education = rest
		return item, nil
	default:
		return nil, &ErrUnknownCollection{Name: name}
	}
}

func removeAt[T any](items []T, name string, index int) (T, []T, error) {
	var zero T
	if index < 0 || index >= len(items) {
		return zero, nil, &ErrIndexOutOfRange{Collection: name, Index: index, Length: len(items)}
	}
	item := items[index]
	rest := append(items[:index:index], items[index+1:]...)
	return item, rest, nil
}

func (s *Session) clearFields(names ...string) {
	for _, name := range names {
		s.fields[name] = ""
	}
}
