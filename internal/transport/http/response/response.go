package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/apperror"
)

// Fail 统一错误出口：业务错误按 Status 落地，其余一律 500 且细节只进日志
func Fail(c *gin.Context, err error) {
	var ae *apperror.E
	if errors.As(err, &ae) {
		if ae.Err != nil {
			_ = c.Error(ae.Err) // 进 access log
		}
		if ae.Status >= http.StatusInternalServerError {
			c.JSON(ae.Status, gin.H{"error": http.StatusText(ae.Status)})
			return
		}
		if len(ae.Violations) > 0 {
			c.JSON(ae.Status, gin.H{"error": ae.Violations})
			return
		}
		c.JSON(ae.Status, gin.H{"error": ae.Message})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
}

// Abort 中间件用
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

// BindJSON 绑定并把校验错误翻译成字段级 400
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.FromBindError(err)
	}
	return nil
}
