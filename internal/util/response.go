package util

import "github.com/gin-gonic/gin"

// Error writes the API's uniform failure body.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"message": msg})
}

// Message writes a plain success message body.
func Message(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"message": msg})
}
