package generate

import (
	"context"
	"net/http"

	"codeberg.org/handleart/server/internal/errors"
	"codeberg.org/handleart/server/internal/identity"
	"codeberg.org/handleart/server/internal/pipeline"
	"github.com/gin-gonic/gin"
)

type Service interface {
	Generate(ctx context.Context, handle, identifier string) (*pipeline.Result, error)
}

// creates a handler for the full analyze-then-synthesize pipeline
func Handler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		visitorID, ok := identity.FromContext(c)
		if !ok {
			errors.InternalError(c, "client identity missing from request context", nil)
			return
		}

		result, err := svc.Generate(c.Request.Context(), req.Handle, visitorID)
		if err != nil {
			errors.FromDomain(c, err, "failed to generate image")
			return
		}

		c.JSON(http.StatusOK, Response{
			ImagePrompt: result.Prompt,
			ImageURL:    result.ImageURL,
			Tier:        string(result.Tier),
		})
	}
}
