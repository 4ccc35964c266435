package errors

import (
	"errors"

	"codeberg.org/handleart/server/internal/ledger"
	"codeberg.org/handleart/server/internal/llm"
	"codeberg.org/handleart/server/internal/pipeline"
	"codeberg.org/handleart/server/internal/synthesizer"
	"github.com/gin-gonic/gin"
)

// maps the generation error taxonomy to HTTP responses; fallback message is
// used for errors outside the taxonomy
func FromDomain(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidHandle):
		InvalidHandle(c)

	case errors.Is(err, synthesizer.ErrSafetyBlocked):
		SafetyBlocked(c)

	case errors.Is(err, ledger.ErrStorageUnavailable):
		StorageUnavailable(c, err)

	case errors.Is(err, llm.ErrEmptyCompletion):
		BadUpstreamPayload(c, CodeEmptyCompletion, err)

	case errors.Is(err, llm.ErrMalformedResponse):
		BadUpstreamPayload(c, CodeMalformedResponse, err)

	default:
		var upstream *llm.UpstreamError
		if errors.As(err, &upstream) {
			UpstreamFailure(c, upstream.Provider, upstream.StatusCode, err)
			return
		}

		InternalError(c, fallback, err)
	}
}
