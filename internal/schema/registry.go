// Package schema declares, per document type, which scalar input fields and
// collections feed the generation payload and under which payload key. The
// registry is the single source of truth for payload assembly; no field
// crosses document types unless listed here.
package schema

import (
	"fmt"

	"github.com/jonathan/docgen-client/internal/types"
)

// FieldSpec binds one scalar input field to its payload key. PayloadKey and
// InputName usually match; they differ for mirrored fields such as the SOP's
// applicant_name, which copies the base name input.
type FieldSpec struct {
	PayloadKey string
	InputName  string
}

// DocSchema is the declarative field set for one document type.
type DocSchema struct {
	DocType string
	Scalars []FieldSpec
	// IncludeCollections marks the resume schema, whose payload carries the
	// five editable collections in addition to its scalars.
	IncludeCollections bool
}

// BaseIdentity lists the identity fields included for every document type
// regardless of its own schema.
var BaseIdentity = []FieldSpec{
	{PayloadKey: "name", InputName: "name"},
	{PayloadKey: "email", InputName: "email"},
	{PayloadKey: "phone", InputName: "phone"},
	{PayloadKey: "location", InputName: "location"},
}

var registry = map[string]DocSchema{
	types.DocTypeResume: {
		DocType:            types.DocTypeResume,
		Scalars:            direct("summary"),
		IncludeCollections: true,
	},
	types.DocTypeSOP: {
		DocType: types.DocTypeSOP,
		Scalars: append(
			[]FieldSpec{{PayloadKey: "applicant_name", InputName: "name"}},
			direct("intro", "academic_background", "research_experience", "why_program", "career_goals", "conclusion")...,
		),
	},
	types.DocTypeLetter: {
		DocType: types.DocTypeLetter,
		Scalars: direct("sender_name", "sender_address", "receiver_name", "receiver_address",
			"receiver_salutation", "subject", "date", "body"),
	},
	types.DocTypeContract: {
		DocType: types.DocTypeContract,
		Scalars: direct("party_a", "party_b", "date_a", "date_b", "scope",
			"responsibilities", "payment_terms", "confidentiality_clause", "termination_clause"),
	},
	types.DocTypeReport: {
		DocType: types.DocTypeReport,
		Scalars: direct("title", "author", "date", "executive_summary", "objectives",
			"methodology", "findings", "recommendations", "conclusion"),
	},
}

// direct builds FieldSpecs whose payload key and input name are identical.
func direct(names ...string) []FieldSpec {
	specs := make([]FieldSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, FieldSpec{PayloadKey: name, InputName: name})
	}
	return specs
}

// ForDocType returns the field schema for a normalized document type.
func ForDocType(docType string) (DocSchema, error) {
	s, ok := registry[docType]
	if !ok {
		return DocSchema{}, fmt.Errorf("no field schema for document type %q", docType)
	}
	return s, nil
}

// BuildFields assembles the payload fields mapping for a document type from
// the current scalar inputs and collections. The result contains exactly the
// keys the schema defines for that type plus the base identity fields.
func BuildFields(docType string, inputs map[string]string, cols types.Collections) (map[string]any, error) {
	s, err := ForDocType(docType)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	for _, spec := range BaseIdentity {
		fields[spec.PayloadKey] = inputs[spec.InputName]
	}
	for _, spec := range s.Scalars {
		fields[spec.PayloadKey] = inputs[spec.InputName]
	}

	if s.IncludeCollections {
		fields["skills"] = emptyAsList(cols.Skills)
		fields["experience_list"] = emptyAsList(cols.Experience)
		fields["education"] = emptyAsList(cols.Education)
		fields["projects"] = emptyAsList(cols.Projects)
		fields["achievements"] = emptyAsList(cols.Achievements)
	}

	return fields, nil
}

// emptyAsList keeps empty collections as [] rather than null in the JSON
// payload, which is what the backend templates iterate over.
func emptyAsList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
