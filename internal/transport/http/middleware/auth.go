package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/apperror"
	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/transport/http/response"
)

const keyPrincipal = "principal"

func bearerToken(c *gin.Context) (string, bool) {
	ah := c.GetHeader("Authorization")
	if !strings.HasPrefix(ah, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(ah, "Bearer "), true
}

// RequireAuth 解析并对齐身份，principal 放进请求上下文
func RequireAuth(r *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			response.Abort(c, apperror.Unauthorized("no token provided"))
			return
		}
		p, err := r.Resolve(c.Request.Context(), raw)
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(keyPrincipal, p)
		c.Next()
	}
}

// OptionalAuth 匿名可过；令牌有效且用户已存在时带上 principal
func OptionalAuth(r *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if p := r.ResolveOptional(c.Request.Context(), raw); p != nil {
				c.Set(keyPrincipal, p)
			}
		}
		c.Next()
	}
}

// RequireAdmin 必须挂在 RequireAuth 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireAdmin(Principal(c)); err != nil {
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}

// Principal 取当前请求的已解析身份；匿名返回 nil
func Principal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(keyPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
