package shared

import (
	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	RequestIDKey = "request_id"
	SessionIDKey = "session_id"
)

// GetSessionID 读取会话中间件写入的会话标识。
func GetSessionID(c *gin.Context) string {
	value, ok := c.Get(SessionIDKey)
	if !ok {
		return ""
	}
	if sid, ok := value.(string); ok {
		return sid
	}
	return ""
}

// GetRequestID 读取请求 ID。
func GetRequestID(c *gin.Context) string {
	value, ok := c.Get(RequestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}
