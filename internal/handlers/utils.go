package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/libshelf/apiserver/internal/store"
	"github.com/libshelf/apiserver/types"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeEnvelope(w http.ResponseWriter, env types.Envelope) {
	writeJSON(w, env.StatusCode, env)
}

func successEnvelope(message string, data any) types.Envelope {
	return types.Envelope{
		StatusCode: http.StatusOK,
		Status:     types.StatusSuccess,
		Message:    message,
		Data:       data,
	}
}

func errorEnvelope(statusCode int, message string) types.Envelope {
	return types.Envelope{
		StatusCode: statusCode,
		Status:     types.StatusError,
		Message:    message,
	}
}

// crudErrorEnvelope maps persistence faults onto the status codes this API
// has always returned: 404 for missing records, 409 for unique-key conflicts,
// and 401 for anything unexpected.
func crudErrorEnvelope(err error, notFoundMsg, duplicateMsg, genericMsg string) types.Envelope {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return errorEnvelope(http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrDuplicateKey):
		return errorEnvelope(http.StatusConflict, duplicateMsg)
	default:
		return errorEnvelope(http.StatusUnauthorized, genericMsg)
	}
}

func validationEnvelope(err error) types.Envelope {
	return errorEnvelope(http.StatusBadRequest, validationMessage(err))
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Sprintf("%s: '%s' failed on the '%s' rule", msgValidationError, e.Field(), e.Tag())
	}
	return msgValidationError
}

func idRequiredEnvelope() types.Envelope {
	return errorEnvelope(http.StatusBadRequest, msgValidationError+": "+msgIDRequired)
}

func idFromQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("id"))
}

// parseDate accepts an RFC 3339 timestamp or a plain yyyy-mm-dd date.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
