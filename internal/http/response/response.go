package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody 操作结果响应结构
type MessageBody struct {
	Message string `json:"message"`
}

// Success 200 响应，直接输出数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(CodeOK, data)
}

// Created 201 响应，location 非空时写入 Location 头
func Created(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(CodeCreated, data)
}

// Message 200 响应，仅包含提示消息
func Message(c *gin.Context, msg string) {
	c.JSON(CodeOK, MessageBody{Message: msg})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorBody{Error: msg})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}
