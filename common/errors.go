package common

import (
	"encoding/json"
	"net/http"

	"github.com/rajalakshmi-growphil/zoho-crm-integration/logger"
	"github.com/sirupsen/logrus"
)

// AppError is the single error shape rendered at the handler boundary.
// Details carries a provider response body verbatim when one is available.
type AppError struct {
	Code    int    `json:"status_code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails attaches a diagnostic payload to the response body.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
