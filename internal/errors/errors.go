package errors

import (
	"net/http"
	"os"
	"strings"

	"codeberg.org/handleart/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.FromDomain() for pipeline/analyzer/synthesizer errors;
//     it maps the domain taxonomy to status codes and logs server-side
//   - Use errors.BadRequest()/InternalError() directly for everything else
//   - Never call both logger.ErrorErr() and an errors helper for the same error
//
// For services/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the handler decide how to log and respond (avoid double logging)

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "invalid_handle")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// standard error codes
const (
	CodeBadRequest         = "bad_request"
	CodeValidationError    = "validation_error"
	CodeServerError        = "server_error"
	CodeTooManyRequests    = "too_many_requests"
	CodeInvalidHandle      = "invalid_handle"
	CodeUpstreamError      = "upstream_error"
	CodeSafetyBlocked      = "safety_blocked"
	CodeStorageUnavailable = "storage_unavailable"
	CodeEmptyCompletion    = "empty_completion"
	CodeMalformedResponse  = "malformed_response"
)

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	details := ""
	if err != nil {
		details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: "request validation failed",
		Details: details,
	})
}

// returns a 400 bad request error for a malformed handle
func InvalidHandle(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeInvalidHandle,
		Message: "handles must be 1-15 characters and contain only letters, numbers, and underscores",
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 422 error when the safety filter blocked generation terminally
func SafetyBlocked(c *gin.Context) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   CodeSafetyBlocked,
		Message: "image generation was blocked by the content safety filter, even after a sanitized retry",
	})
}

// returns a 503 error when the usage ledger store is unreachable
func StorageUnavailable(c *gin.Context, err error) {
	logger.ErrorErr(err, "ledger storage unavailable",
		"path", c.Request.URL.Path,
	)

	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Error:   CodeStorageUnavailable,
		Message: "usage tracking is temporarily unavailable, please retry",
	})
}

// propagates an upstream backend failure, reusing the upstream status code
// where it is a meaningful HTTP status
func UpstreamFailure(c *gin.Context, provider string, statusCode int, err error) {
	logger.ErrorErr(err, "upstream backend error",
		"provider", provider,
		"upstream_status", statusCode,
		"path", c.Request.URL.Path,
	)

	status := statusCode
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}

	c.JSON(status, ErrorResponse{
		Error:   CodeUpstreamError,
		Message: provider + " backend request failed",
		Details: sanitizeError(err),
	})
}

// returns a 502 error for a 2xx upstream response with an unusable payload
func BadUpstreamPayload(c *gin.Context, code string, err error) {
	logger.ErrorErr(err, "unusable upstream payload",
		"path", c.Request.URL.Path,
	)

	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   code,
		Message: "the backend responded but produced no usable output",
		Details: sanitizeError(err),
	})
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()
	env := os.Getenv("ENVIRONMENT")

	if env != "production" {
		return errMsg
	}

	if strings.Contains(errMsg, "database") || strings.Contains(errMsg, "sql") {
		return "database operation failed"
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") {
		return "connection error occurred"
	}

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline") {
		return "request timed out"
	}

	if strings.Contains(errMsg, "api key") || strings.Contains(errMsg, "unauthorized") {
		return "upstream authorization failed"
	}

	return "an error occurred"
}
