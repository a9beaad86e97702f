package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/unievents/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// fromDomainError maps a service error onto the response envelope by its AppError code.
func fromDomainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status := statusForCode(code)
	if status == http.StatusServiceUnavailable {
		return NewHTTPError(status, code, appMessage(err), err)
	}
	if status >= http.StatusInternalServerError {
		return NewHTTPError(status, "internal_error", "something went wrong", err)
	}
	return NewHTTPError(status, code, appMessage(err), err)
}

const codeStorageNotConfigured = "storage_not_configured"

func statusForCode(code string) int {
	switch code {
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeInvalidCredentials, apperrors.CodeInvalidToken:
		return http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		return http.StatusForbidden
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case codeStorageNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func appMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return errMessage(err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
