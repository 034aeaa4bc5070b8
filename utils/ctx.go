package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/ilhamriadi/projects.co.id/entity"
)

const actorKey = "actor"

func SetActor(c *gin.Context, a entity.Actor) {
	c.Set(actorKey, a)
	c.Set("userId", a.ID)
	c.Set("role", string(a.Role))
}

// CurrentActor คืน Actor ที่ middleware ใส่ไว้
func CurrentActor(c *gin.Context) (entity.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entity.Actor{}, false
	}
	a, ok := v.(entity.Actor)
	return a, ok
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString("userId")
}

func CurrentRole(c *gin.Context) string {
	return c.GetString("role")
}
