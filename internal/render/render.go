// Package render produces the HTML list fragments the form surface displays
// for the five editable collections. Every mutation re-renders all five
// lists, so the visible index of an item always matches its index in the
// backing collection. User-entered text is sanitized before embedding.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonathan/docgen-client/internal/session"
	"github.com/jonathan/docgen-client/internal/types"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitize strips any markup from user text, leaving escaped plain text.
func sanitize(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy.Sanitize(raw)
}

// Lists renders all five collection lists, keyed by collection name.
func Lists(cols types.Collections) map[string]string {
	return map[string]string{
		session.CollectionSkills:       TextList(cols.Skills),
		session.CollectionAchievements: TextList(cols.Achievements),
		session.CollectionExperience:   ExperienceList(cols.Experience),
		session.CollectionProjects:     ProjectList(cols.Projects),
		session.CollectionEducation:    EducationList(cols.Education),
	}
}

// TextList renders a scalar-text collection (skills, achievements).
func TextList(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		openItem(&sb, i)
		fmt.Fprintf(&sb, `<span class="item-text">%s</span>`, sanitize(item))
		closeItem(&sb, i)
	}
	return sb.String()
}

// ExperienceList renders the experience collection with nested bullets.
func ExperienceList(items []types.ExperienceEntry) string {
	var sb strings.Builder
	for i, item := range items {
		openItem(&sb, i)
		fmt.Fprintf(&sb, `<span class="item-text"><strong>%s</strong>, %s`, sanitize(item.Title), sanitize(item.Company))
		if item.Period != "" {
			fmt.Fprintf(&sb, ` <span class="period">(%s)</span>`, sanitize(item.Period))
		}
		sb.WriteString(`</span>`)
		if len(item.Bullets) > 0 {
			sb.WriteString(`<ul class="bullets">`)
			for _, bullet := range item.Bullets {
				fmt.Fprintf(&sb, `<li>%s</li>`, sanitize(bullet))
			}
			sb.WriteString(`</ul>`)
		}
		closeItem(&sb, i)
	}
	return sb.String()
}

// ProjectList renders the projects collection.
func ProjectList(items []types.ProjectEntry) string {
	var sb strings.Builder
	for i, item := range items {
		openItem(&sb, i)
		fmt.Fprintf(&sb, `<span class="item-text"><strong>%s</strong>`, sanitize(item.Name))
		if item.TechStack != "" {
			fmt.Fprintf(&sb, ` <span class="stack">[%s]</span>`, sanitize(item.TechStack))
		}
		if item.Description != "" {
			fmt.Fprintf(&sb, ` - %s`, sanitize(item.Description))
		}
		sb.WriteString(`</span>`)
		closeItem(&sb, i)
	}
	return sb.String()
}

// EducationList renders the education collection. Grade is shown only when
// present.
func EducationList(items []types.EducationEntry) string {
	var sb strings.Builder
	for i, item := range items {
		openItem(&sb, i)
		fmt.Fprintf(&sb, `<span class="item-text"><strong>%s</strong>, %s`, sanitize(item.Degree), sanitize(item.Institute))
		if item.Year != "" {
			fmt.Fprintf(&sb, ` (%s)`, sanitize(item.Year))
		}
		if item.Grade != "" {
			fmt.Fprintf(&sb, ` <span class="grade">%s</span>`, sanitize(item.Grade))
		}
		sb.WriteString(`</span>`)
		closeItem(&sb, i)
	}
	return sb.String()
}

func openItem(sb *strings.Builder, index int) {
	fmt.Fprintf(sb, `<li class="collection-item" data-index="%d">`, index)
}

func closeItem(sb *strings.Builder, index int) {
	fmt.Fprintf(sb, `<button class="edit-btn" data-index="%d">Edit</button>`, index)
	fmt.Fprintf(sb, `<button class="remove-btn" data-index="%d">Remove</button>`, index)
	sb.WriteString(`</li>`)
}
