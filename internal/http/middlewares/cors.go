package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The header set is fixed by the public contract: the form is served from a
// static origin and calls this API cross-origin, so every response carries
// the same wildcard set and preflights short-circuit with an empty 200.
const (
	allowOrigin  = "*"
	allowHeaders = "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token"
	allowMethods = "OPTIONS,POST,GET,DELETE"
)

func CORS() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", allowOrigin)
		ctx.Header("Access-Control-Allow-Headers", allowHeaders)
		ctx.Header("Access-Control-Allow-Methods", allowMethods)

		if ctx.Request.Method == http.MethodOptions {
			ctx.Header("Content-Type", "application/json")
			ctx.AbortWithStatus(http.StatusOK)
			return
		}

		ctx.Next()
	}
}
