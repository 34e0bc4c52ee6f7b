package types

// GenerationPayload is the JSON request body sent to the generation backend's
// POST /generate endpoint. It is built fresh for every submission and never
// persisted.
type GenerationPayload struct {
	DocType string `json:"doc_type"`
	UseAI   bool   `json:"use_ai"`
	// AIContext is only populated in guided mode; in manual mode it is
	// omitted entirely.
	AIContext  *string        `json:"ai_context,omitempty"`
	Fields     map[string]any `json:"fields"`
	ReturnDocx bool           `json:"return_docx"`
}
