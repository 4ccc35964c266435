package analyze

import (
	"context"
	"net/http"

	"codeberg.org/handleart/server/internal/analyzer"
	"codeberg.org/handleart/server/internal/errors"
	"codeberg.org/handleart/server/internal/pipeline"
	"github.com/gin-gonic/gin"
)

type Service interface {
	Analyze(ctx context.Context, handle string, safetyMode bool) (*analyzer.PromptArtifact, error)
}

// creates a handler for account analysis
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

		artifact, err := svc.Analyze(c.Request.Context(), req.Handle, req.SafetyMode)
		if err != nil {
			errors.FromDomain(c, err, "failed to generate image prompt")
			return
		}

		c.JSON(http.StatusOK, Response{
			ImagePrompt: artifact.Text,
		})
	}
}
