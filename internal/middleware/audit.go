package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-api/internal/service"
)

// AuditContext copies the client address and user agent into the request
// context so that audit entries written by services can attribute them.
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := service.WithRequestMeta(c.Request.Context(), service.RequestMeta{
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
