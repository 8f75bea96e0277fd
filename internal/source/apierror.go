package source

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// APIError is the normalized form of every non-2xx response. All error body
// shapes the services produce collapse into one human-readable message; the
// structured field errors are kept for callers that want them.
type APIError struct {
	Status      int
	Message     string
	FieldErrors map[string][]string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewValidationError builds the same *APIError a server-side validation
// failure decodes to. Pre-dispatch checks use it so callers see one error
// shape regardless of where validation ran.
func NewValidationError(fields map[string][]string) *APIError {
	return &APIError{
		Status:      http.StatusBadRequest,
		Message:     joinFieldErrors(fields),
		FieldErrors: fields,
	}
}

// errorBody covers the shapes the services are known to return:
// {errors:{field:[msgs]}} for validation, else one of title/message/error.
type errorBody struct {
	Errors  map[string][]string `json:"errors"`
	Title   string              `json:"title"`
	Message string              `json:"message"`
	Err     string              `json:"error"`
}

// decodeAPIError turns a non-2xx status and body into an *APIError.
// Unparseable bodies degrade to the HTTP status text.
func decodeAPIError(status int, body []byte) *APIError {
	out := &APIError{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if len(eb.Errors) > 0 {
			out.FieldErrors = eb.Errors
			out.Message = joinFieldErrors(eb.Errors)
			return out
		}
		for _, msg := range []string{eb.Title, eb.Message, eb.Err} {
			if strings.TrimSpace(msg) != "" {
				out.Message = msg
				return out
			}
		}
	}

	out.Message = http.StatusText(status)
	if out.Message == "" {
		out.Message = "request failed"
	}
	return out
}

// joinFieldErrors concatenates a field→messages map into a single display
// string, fields in stable order.
func joinFieldErrors(errs map[string][]string) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(errs[f], ", "))
	}
	return strings.Join(parts, "; ")
}
