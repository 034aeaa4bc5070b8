// middlewares/ws_auth.go
package middlewares

import (
	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware ใช้ตรวจสอบ JWT จากทั้ง query และ header (browser ส่ง header ตอน upgrade ไม่ได้)
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr = bearer(c)
		}
		if !authenticate(c, tokenStr, secret) {
			return
		}
		c.Next()
	}
}
