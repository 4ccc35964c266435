package reports

import "github.com/gin-gonic/gin"

// registers report generation routes
func RegisterRoutes(router *gin.RouterGroup, svc Service) {
	router.POST("/roast", RoastHandler(svc))
	router.POST("/profile", ProfileHandler(svc))
}
