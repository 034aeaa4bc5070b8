package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ilhamriadi/projects.co.id/areas"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/ilhamriadi/projects.co.id/pkg/resp"
)

type AreaController struct {
	Areas *areas.Hierarchy
}

func NewAreaController(h *areas.Hierarchy) *AreaController {
	return &AreaController{Areas: h}
}

// GET /areas
func (a *AreaController) List(c *gin.Context) {
	resp.OK(c, "Areas retrieved successfully", a.Areas)
}

// GET /areas/:district
func (a *AreaController) District(c *gin.Context) {
	d, ok := a.Areas.District(c.Param("district"))
	if !ok {
		resp.Fail(c, http.StatusNotFound, apperr.CodeAreaNotFound, "Kecamatan not found")
		return
	}
	resp.OK(c, "Area retrieved successfully", d)
}
