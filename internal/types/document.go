// Package types provides type definitions for the structured data exchanged
// with the document generation backend.
package types

import "strings"

// Supported document types.
const (
	DocTypeResume   = "resume"
	DocTypeSOP      = "sop"
	DocTypeLetter   = "letter"
	DocTypeContract = "contract"
	DocTypeReport   = "report"
)

// Creation modes. Manual sends field values verbatim; guided asks the backend
// to treat them as rough notes for AI expansion.
const (
	ModeManual = "manual"
	ModeGuided = "guided"
)

// DocTypes lists every supported document type in display order.
var DocTypes = []string{DocTypeResume, DocTypeSOP, DocTypeLetter, DocTypeContract, DocTypeReport}

// NormalizeDocType trims and lower-cases a document type the same way the
// backend does before template lookup.
func NormalizeDocType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// ValidDocType reports whether t (already normalized) is a supported type.
func ValidDocType(t string) bool {
	switch t {
	case DocTypeResume, DocTypeSOP, DocTypeLetter, DocTypeContract, DocTypeReport:
		return true
	}
	return false
}

// ValidMode reports whether m is a supported creation mode.
func ValidMode(m string) bool {
	return m == ModeManual || m == ModeGuided
}
