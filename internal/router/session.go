package router

import (
	"net/http"
	"strings"

	"github.com/minishop/internal/config"
	handlershared "github.com/minishop/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultSessionCookie = "shop_session"

// SessionMiddleware 会话中间件
// 从 Cookie 读取会话标识，缺失或格式非法时签发新的随机标识。
// 每次请求都会刷新 Cookie 有效期。
func SessionMiddleware(cfg config.SessionConfig) gin.HandlerFunc {
	name := strings.TrimSpace(cfg.CookieName)
	if name == "" {
		name = defaultSessionCookie
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = "/"
	}
	maxAge := cfg.TTLSeconds
	if maxAge < 0 {
		maxAge = 0
	}

	return func(c *gin.Context) {
		sessionID := ""
		if raw, err := c.Cookie(name); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				sessionID = parsed.String()
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		c.Set(handlershared.SessionIDKey, sessionID)

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    sessionID,
			Path:     path,
			MaxAge:   maxAge,
			Secure:   cfg.Secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Next()
	}
}
