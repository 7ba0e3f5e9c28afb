// Package response shapes every API reply as {success, message, data}.
package response

import "github.com/gin-gonic/gin"

// Body is the uniform response envelope.
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Body{Success: true, Message: message, Data: data})
}

// List writes a success envelope carrying a collection and its count.
func List(c *gin.Context, status int, count int, data any) {
	c.JSON(status, Body{Success: true, Count: &count, Data: data})
}

// Fail writes a failure envelope.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Body{Success: false, Message: message})
}

// AbortFail writes a failure envelope and aborts the handler chain.
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Body{Success: false, Message: message})
}
