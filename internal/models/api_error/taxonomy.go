package api_error

import (
	"database/sql"
	"errors"
	"net/http"
)

// Failure taxonomy. Every operation surfaces one of these; handlers push
// them through c.Error and the error-handler middleware renders them.

func Validation(msg string) APIError {
	return NewFromStr(msg, http.StatusBadRequest)
}

func Unauthorized(msg string) APIError {
	return NewFromStr(msg, http.StatusUnauthorized)
}

func NotFound(msg string) APIError {
	return NewFromStr(msg, http.StatusNotFound)
}

func InvalidOperation(msg string) APIError {
	return NewFromStr(msg, http.StatusBadRequest)
}

func AlreadyExists(msg string) APIError {
	return NewFromStr(msg, http.StatusBadRequest)
}

func Store(e error) APIError {
	return NewFromErr(e, http.StatusInternalServerError)
}

// FromDB maps a store error to the taxonomy: missing rows become a
// NotFound with the given message, everything else is a store failure.
func FromDB(e error, notFoundMsg string) APIError {
	if errors.Is(e, sql.ErrNoRows) {
		return NotFound(notFoundMsg)
	}
	return Store(e)
}
