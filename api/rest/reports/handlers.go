package reports

import (
	"context"
	"net/http"

	"codeberg.org/handleart/server/internal/errors"
	"codeberg.org/handleart/server/internal/pipeline"
	"github.com/gin-gonic/gin"
)

type Service interface {
	Roast(ctx context.Context, handle string) (string, error)
	Profile(ctx context.Context, handle string) (string, error)
}

// creates a handler for roast letter generation
func RoastHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle, ok := bindHandle(c)
		if !ok {
			return
		}

		letter, err := svc.Roast(c.Request.Context(), handle)
		if err != nil {
			errors.FromDomain(c, err, "failed to generate roast")
			return
		}

		c.JSON(http.StatusOK, RoastResponse{RoastLetter: letter})
	}
}

// creates a handler for behavioral profile generation
func ProfileHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle, ok := bindHandle(c)
		if !ok {
			return
		}

		report, err := svc.Profile(c.Request.Context(), handle)
		if err != nil {
			errors.FromDomain(c, err, "failed to generate profile")
			return
		}

		c.JSON(http.StatusOK, ProfileResponse{ProfileReport: report})
	}
}

func bindHandle(c *gin.Context) (string, bool) {
	var req Request

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.ValidationError(c, err)
		return "", false
	}

	if !pipeline.ValidHandle(req.Handle) {
		errors.InvalidHandle(c)
		return "", false
	}

	return req.Handle, true
}
