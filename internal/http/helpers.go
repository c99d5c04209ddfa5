package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/highlights-keeper/internal/library"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// Machine-readable error codes.
const (
	CodeNeedsConfirmation = "needs_confirmation"
	CodeInvalidPolicy     = "invalid_policy"
	CodeInvalidEdit       = "invalid_edit"
	CodeFileTooLarge      = "file_too_large"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message, code string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// respondLibraryError maps library errors to HTTP responses. Operation
// failures expose only their generic message; the cause was logged by the library.
func respondLibraryError(c *gin.Context, err error) {
	var opErr *library.OpError
	switch {
	case errors.Is(err, library.ErrPolicyRequired):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "highlights already exist: choose merge or overwrite",
			Code:    CodeNeedsConfirmation,
			Details: []string{"merge", "overwrite"},
		})
	case errors.Is(err, library.ErrUnknownPolicy):
		respondError(c, http.StatusBadRequest, err.Error(), CodeInvalidPolicy)
	case errors.Is(err, library.ErrInvalidEdit):
		respondError(c, http.StatusBadRequest, err.Error(), CodeInvalidEdit)
	case errors.Is(err, library.ErrGroupNotFound):
		respondNotFound(c, "title")
	case errors.As(err, &opErr) && opErr.Op == library.OpParse:
		respondBadRequest(c, opErr.Error())
	case errors.As(err, &opErr):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: opErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
