package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"detail": message})
}

func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{"detail": message, "data": data})
}
