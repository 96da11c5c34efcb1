package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/travel-planner/internal/calculator"
	"github.com/pkordes/travel-planner/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse wraps an ErrorDetail as {"error":{...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// NoticeResponse reports an operation that had nothing to do.
type NoticeResponse struct {
	Notice string `json:"notice"`
}

// errorMapping pairs a domain sentinel with its status and error code.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrPolicy, http.StatusConflict, "policy_violation"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{domain.ErrConfirmationRequired, http.StatusPreconditionRequired, "confirmation_required"},
}

// writeError maps a service error onto the HTTP response. ErrNothingToDo is
// not a failure and is sent as a 200 notice. Unknown errors become 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNothingToDo) {
		writeJSON(w, http.StatusOK, NoticeResponse{Notice: unwrapMessage(err)})
		return
	}
	if fe, ok := calculator.AsFieldError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: fe.Message, Field: fe.Field}})
		return
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, ErrorResponse{Error: ErrorDetail{Code: m.code, Message: unwrapMessage(err)}})
			return
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, requestBody("request body too large"))
		return
	}

	s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "itinerary.AddDay: policy violation: a trip can have at most 30 days"
// → "a trip can have at most 30 days". With no text after the sentinel the
// sentinel's own text is returned.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{
		domain.ErrNotFound,
		domain.ErrValidation,
		domain.ErrPolicy,
		domain.ErrInvalidCredentials,
		domain.ErrConfirmationRequired,
		domain.ErrNothingToDo,
	} {
		if !errors.Is(err, sentinel) {
			continue
		}
		marker := sentinel.Error() + ": "
		if i := strings.Index(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
		return sentinel.Error()
	}
	return msg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into v. It reports false after writing
// the error response itself.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, requestBody("request body too large"))
			return false
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("malformed JSON body: "+err.Error()))
		return false
	}
	return true
}
