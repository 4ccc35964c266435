package generate

import "github.com/gin-gonic/gin"

// registers full-pipeline generation routes
func RegisterRoutes(router *gin.RouterGroup, svc Service) {
	router.POST("/generate", Handler(svc))
}
