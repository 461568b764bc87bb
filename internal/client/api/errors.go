package api

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"onepercent/internal/shared/models"
)

// APIError is a non-2xx backend response. Field-level validation messages
// (the backend's errorMessages list) are kept so callers can attach them to
// the matching form field instead of showing a generic failure.
type APIError struct {
	Status  int
	Message string
	Fields  []models.FieldError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// FieldMessage returns the validation message for a field path, such as the
// "image" path error the upload endpoints produce.
func (e *APIError) FieldMessage(path string) (string, bool) {
	for _, f := range e.Fields {
		if f.Path == path {
			return f.Message, true
		}
	}
	return "", false
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{Status: status}
	var env models.ErrorResponse
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		apiErr.Message = humanizeByteCounts(env.Message)
		apiErr.Fields = env.ErrorMessages
	}
	return apiErr
}

// rangeErrPattern matches the upload layer's numeric offset-range errors,
// e.g. "payload size 6291456 is out of range" or "file size 6291456 exceeds
// limit 5242880".
var (
	rangeErrPattern = regexp.MustCompile(`(?i)(out of range|exceeds|too large)`)
	byteCount       = regexp.MustCompile(`\b\d{4,}\b`)
)

// humanizeByteCounts reformats raw byte counts inside offset-range upload
// errors into KB/MB units so the surfaced message is readable.
func humanizeByteCounts(msg string) string {
	if !rangeErrPattern.MatchString(msg) {
		return msg
	}
	return byteCount.ReplaceAllStringFunc(msg, func(s string) string {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 1024 {
			return s
		}
		return formatBytes(n)
	})
}

func formatBytes(n int64) string {
	const (
		kb = 1024
		mb = 1024 * 1024
	)
	switch {
	case n >= mb:
		return strconv.FormatFloat(float64(n)/mb, 'f', 2, 64) + " MB"
	case n >= kb:
		return strconv.FormatFloat(float64(n)/kb, 'f', 2, 64) + " KB"
	default:
		return strconv.FormatInt(n, 10) + " B"
	}
}
