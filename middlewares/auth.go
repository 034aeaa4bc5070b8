package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/ilhamriadi/projects.co.id/pkg/resp"
	"github.com/ilhamriadi/projects.co.id/utils"
)

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// authenticate แปลง token เป็น Actor; claims ที่ขัดกฎ role/พื้นที่ถือว่า token เสีย
func authenticate(c *gin.Context, tokenStr, secret string) bool {
	if tokenStr == "" {
		resp.Unauthorized(c, apperr.CodeTokenRequired, "Access token required")
		return false
	}
	claims, err := utils.ParseToken(tokenStr, secret)
	if err != nil {
		resp.Unauthorized(c, apperr.CodeInvalidToken, "Invalid or expired token")
		return false
	}
	actor := claims.Actor()
	if err := actor.Validate(); err != nil {
		resp.Unauthorized(c, apperr.CodeInvalidToken, "Invalid token claims")
		return false
	}
	utils.SetActor(c, actor)
	return true
}

// ใช้ตรวจ token และ (ถ้ามี) บังคับ role
func AuthMiddleware(secret string, requiredRoles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, bearer(c), secret) {
			return
		}
		if len(requiredRoles) > 0 && !hasRole(c, requiredRoles) {
			resp.Forbidden(c, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

func hasRole(c *gin.Context, roles []entity.Role) bool {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		return false
	}
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// RequireRoles ใช้ต่อจาก AuthMiddleware ใน group ที่ตรวจ token แล้ว
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasRole(c, roles) {
			resp.Forbidden(c, "Insufficient permissions")
			return
		}
		c.Next()
	}
}
