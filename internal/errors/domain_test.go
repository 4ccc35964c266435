package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/handleart/server/internal/ledger"
	"codeberg.org/handleart/server/internal/llm"
	"codeberg.org/handleart/server/internal/pipeline"
	"codeberg.org/handleart/server/internal/synthesizer"
	"github.com/gin-gonic/gin"
)

func runFromDomain(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)

	FromDomain(c, err, "generation failed")

	var body ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not an error payload: %v", err)
	}

	return recorder.Code, body
}

func TestFromDomain_InvalidHandle(t *testing.T) {
	status, body := runFromDomain(t, pipeline.ErrInvalidHandle)

	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}

	if body.Error != CodeInvalidHandle {
		t.Errorf("code = %s, want %s", body.Error, CodeInvalidHandle)
	}
}

func TestFromDomain_SafetyBlocked(t *testing.T) {
	status, body := runFromDomain(t, synthesizer.ErrSafetyBlocked)

	if status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", status)
	}

	if body.Error != CodeSafetyBlocked {
		t.Errorf("code = %s, want %s", body.Error, CodeSafetyBlocked)
	}
}

func TestFromDomain_StorageUnavailable(t *testing.T) {
	err := fmt.Errorf("%w: connection refused", ledger.ErrStorageUnavailable)
	status, body := runFromDomain(t, err)

	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", status)
	}

	if body.Error != CodeStorageUnavailable {
		t.Errorf("code = %s, want %s", body.Error, CodeStorageUnavailable)
	}
}

func TestFromDomain_WrappedErrorsStillMatch(t *testing.T) {
	err := fmt.Errorf("premium image generation failed: %w", llm.ErrMalformedResponse)
	status, body := runFromDomain(t, err)

	if status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", status)
	}

	if body.Error != CodeMalformedResponse {
		t.Errorf("code = %s, want %s", body.Error, CodeMalformedResponse)
	}
}

func TestFromDomain_EmptyCompletion(t *testing.T) {
	status, body := runFromDomain(t, llm.ErrEmptyCompletion)

	if status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", status)
	}

	if body.Error != CodeEmptyCompletion {
		t.Errorf("code = %s, want %s", body.Error, CodeEmptyCompletion)
	}
}

func TestFromDomain_UpstreamStatusPropagated(t *testing.T) {
	err := fmt.Errorf("account analysis failed: %w", &llm.UpstreamError{
		Provider:   "xAI",
		StatusCode: http.StatusTooManyRequests,
		Body:       "rate limited",
	})

	status, body := runFromDomain(t, err)

	if status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want the upstream 429", status)
	}

	if body.Error != CodeUpstreamError {
		t.Errorf("code = %s, want %s", body.Error, CodeUpstreamError)
	}
}

func TestFromDomain_NonHTTPUpstreamStatusBecomes502(t *testing.T) {
	err := &llm.UpstreamError{Provider: "OpenRouter", StatusCode: 0, Body: "connection reset"}

	status, _ := runFromDomain(t, err)

	if status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 for a non-HTTP upstream status", status)
	}
}

func TestFromDomain_UnknownErrorIs500(t *testing.T) {
	status, body := runFromDomain(t, fmt.Errorf("something unexpected"))

	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}

	if body.Error != CodeServerError {
		t.Errorf("code = %s, want %s", body.Error, CodeServerError)
	}
}
