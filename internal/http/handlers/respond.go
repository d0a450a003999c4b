package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error bodies are flat {"error": ...}: the front-end renders whatever JSON
// it receives and this shape is the published contract.

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

// RespondInternal hides the underlying failure behind a generic body.
// Internal detail is logged at the call site, never sent to the caller.
func RespondInternal(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": "Unable to process registration at this time",
	})
}
