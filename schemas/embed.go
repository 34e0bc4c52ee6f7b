// Package schemas embeds the JSON Schemas shared with the generation backend.
package schemas

import _ "embed"

// GenerationPayload is the JSON Schema for the outbound /generate request
// body.
//
//go:embed generation_payload.schema.json
var GenerationPayload []byte
