package analyze

import "github.com/gin-gonic/gin"

// registers account analysis routes
func RegisterRoutes(router *gin.RouterGroup, svc Service) {
	router.POST("/analyze", Handler(svc))
}
