package synthesize

import "github.com/gin-gonic/gin"

// registers image synthesis routes
func RegisterRoutes(router *gin.RouterGroup, svc Service) {
	router.POST("/synthesize", Handler(svc))
}
