package synthesize

import (
	"context"
	"net/http"

	"codeberg.org/handleart/server/internal/errors"
	"codeberg.org/handleart/server/internal/identity"
	"codeberg.org/handleart/server/internal/pipeline"
	"codeberg.org/handleart/server/internal/synthesizer"
	"github.com/gin-gonic/gin"
)

type Service interface {
	Synthesize(ctx context.Context, req synthesizer.Request) (*synthesizer.Result, error)
}

// creates a handler for image synthesis
func Handler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !pipeline.ValidHandle(req.Handle) {
			errors.InvalidHandle(c)
			return
		}

		visitorID, ok := identity.FromContext(c)
		if !ok {
			errors.InternalError(c, "client identity missing from request context", nil)
			return
		}

		result, err := svc.Synthesize(c.Request.Context(), synthesizer.Request{
			Prompt:     req.Prompt,
			Handle:     req.Handle,
			Identifier: visitorID,
		})
		if err != nil {
			errors.FromDomain(c, err, "failed to generate image")
			return
		}

		c.JSON(http.StatusOK, Response{
			ImageURL: result.URL,
			Tier:     string(result.Tier),
		})
	}
}
