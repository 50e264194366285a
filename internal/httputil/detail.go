// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"encoding/json"
	"io"
	"strings"
)

// maxDetailBytes bounds how much of an error body is read.
const maxDetailBytes = 64 << 10

// errorBody is the failure response shape of the conversion service.
type errorBody struct {
	Detail any `json:"detail"`
}

// Detail extracts the human-readable "detail" message from a JSON error
// body. It returns "" when the body is not JSON, has no detail field, or
// the detail is empty. Non-string details (for example validation error
// lists) are re-encoded as compact JSON.
func Detail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxDetailBytes))
	if err != nil {
		return ""
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}

	switch d := body.Detail.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(d)
	default:
		raw, err := json.Marshal(d)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
