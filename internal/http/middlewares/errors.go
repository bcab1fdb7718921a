package middlewares

import "github.com/gin-gonic/gin"

// abortWithError writes the same error envelope handlers use. It lives here
// because handlers already imports middlewares.
func abortWithError(c *gin.Context, status int, code, message string) {
	reqID, _ := c.Get(CtxRequestID)
	id, _ := reqID.(string)

	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":      code,
			"message":   message,
			"requestId": id,
		},
	})
}
