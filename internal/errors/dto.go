package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorDetail carries the client-safe portion of an error.
type ErrorDetail struct {
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds the response body for err.
func NewErrorResponse(err error, requestID string) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		RequestID: requestID,
		Error: ErrorDetail{
			Display: DisplayMessage(err),
			Details: SafeDetails(err),
		},
	}
}

// DisplayMessage returns the first non-empty hint attached to err, or a
// generic message when no hint is present. Hints are the only part of an
// error intended for end users.
func DisplayMessage(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

// SafeDetails collects the structured detail payloads attached via
// WithReportableDetails across the whole error chain.
func SafeDetails(err error) map[string]any {
	details := make(map[string]any)
	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			rest, ok := strings.CutPrefix(payload, jsonDetailPrefix)
			if !ok {
				continue
			}
			var fields map[string]any
			if json.Unmarshal([]byte(rest), &fields) == nil {
				for k, v := range fields {
					details[k] = v
				}
			}
		}
	}
	return details
}
