package httpapi

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope:
// success: {success:true, data?, message?}
// failure: {success:false, message, errors?}
// Failure messages never carry stack traces or internal identifiers.

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
