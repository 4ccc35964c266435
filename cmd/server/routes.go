package main

import (
	"codeberg.org/handleart/server/api/rest/analyze"
	"codeberg.org/handleart/server/api/rest/generate"
	"codeberg.org/handleart/server/api/rest/health"
	"codeberg.org/handleart/server/api/rest/reports"
	"codeberg.org/handleart/server/api/rest/synthesize"
	"codeberg.org/handleart/server/internal/identity"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server, identitySource identity.Source, rateLimit gin.HandlerFunc) {
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")
	v1.Use(rateLimit)

	{
		v1.GET("/ping", health.PingHandler)

		analyze.RegisterRoutes(v1, server.services.Analyzer)
		reports.RegisterRoutes(v1, server.services.Analyzer)

		// tiered endpoints need the anonymous identity resolved first
		identified := v1.Group("")
		identified.Use(identity.Middleware(identitySource))

		synthesize.RegisterRoutes(identified, server.services.Synthesizer)
		generate.RegisterRoutes(identified, server.services.Pipeline)
	}
}
