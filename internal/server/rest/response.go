package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/validation"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Envelope is the body of every response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	msgNoToken        = "No token provided!"
	msgBadToken       = "Failed to authenticate token!"
	msgAccessDenied   = "Access denied!"
	msgBadBody        = "Invalid request body!"
	msgInternal       = "An internal error occurred!"
	msgDuplicateEmail = "User with the provided email already exists!"
	msgEmptyCreds     = "Empty credentials supplied!"
	msgInvalidCreds   = "Invalid credentials entered!"
	msgInvalidPass    = "Invalid password entered!"
	msgNotFound       = "User not found!"
	msgWrongCurrent   = "Current password is incorrect!"
	msgUnavailable    = "Storage unavailable!"
)

func (s *Server) respond(w http.ResponseWriter, r *http.Request, code int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(r.Context(), "failed to write HTTP response", "error", err)
	}
}

func (s *Server) success(w http.ResponseWriter, r *http.Request, message string, data any) {
	s.respond(w, r, http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, message string) {
	s.respond(w, r, code, Envelope{Status: StatusFailed, Message: message})
}

// failWith reports a service error. Business outcomes keep status 200; the
// envelope status carries the failure.
func (s *Server) failWith(w http.ResponseWriter, r *http.Request, err error) {
	s.fail(w, r, http.StatusOK, messageFor(err))
}

func messageFor(err error) string {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Message
	}

	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return msgDuplicateEmail
	case errors.Is(err, common.ErrEmptyCredentials):
		return msgEmptyCreds
	case errors.Is(err, common.ErrInvalidCredentials):
		return msgInvalidCreds
	case errors.Is(err, common.ErrInvalidPassword):
		return msgInvalidPass
	case errors.Is(err, common.ErrInvalidCurrentPassword):
		return msgWrongCurrent
	case errors.Is(err, common.ErrorNotFound):
		return msgNotFound
	default:
		return msgInternal
	}
}
