package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/ilhamriadi/projects.co.id/pkg/resp"
	"github.com/ilhamriadi/projects.co.id/services"
	"github.com/ilhamriadi/projects.co.id/utils"
)

type DisasterController struct {
	Svc *services.DisasterService
}

func NewDisasterController(svc *services.DisasterService) *DisasterController {
	return &DisasterController{Svc: svc}
}

func currentActor(c *gin.Context) (entity.Actor, bool) {
	a, ok := utils.CurrentActor(c)
	if !ok {
		resp.Unauthorized(c, apperr.CodeTokenRequired, "Access token required")
	}
	return a, ok
}

// queryInt: ไม่ส่งมา = 0 (service ใส่ค่า default ให้)
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		resp.BadRequest(c, key+" must be an integer")
		return 0, false
	}
	return n, true
}

// POST /disasters
func (h *DisasterController) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var in services.CreateDisasterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), actor, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Disaster report created successfully", d)
}

// GET /disasters
func (h *DisasterController) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	res, err := h.Svc.List(c.Request.Context(), actor, services.ListQuery{
		District:     c.Query("kecamatan"),
		Village:      c.Query("desa"),
		DisasterType: c.Query("disaster_type"),
		Status:       c.Query("status"),
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		Search:       c.Query("search"),
		Page:         page,
		Limit:        limit,
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Disasters retrieved successfully", res)
}

// GET /disasters/:id
func (h *DisasterController) Detail(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	d, err := h.Svc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Disaster retrieved successfully", d)
}

// PUT /disasters/:id
func (h *DisasterController) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var in services.UpdateDisasterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	d, err := h.Svc.Update(c.Request.Context(), actor, c.Param("id"), in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Disaster report updated successfully", d)
}

// PUT /disasters/:id/status
func (h *DisasterController) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var in services.UpdateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	d, err := h.Svc.UpdateStatus(c.Request.Context(), actor, c.Param("id"), in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Disaster status updated successfully", d)
}

// DELETE /disasters/:id
func (h *DisasterController) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Disaster report deleted successfully", nil)
}

// GET /disasters/:id/activity
func (h *DisasterController) Activity(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	logs, err := h.Svc.ActivityLog(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Activity retrieved successfully", logs)
}

// GET /disasters/search?q=
func (h *DisasterController) Search(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	hits, err := h.Svc.Search(c.Request.Context(), actor, c.Query("q"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Search completed", hits)
}

// ---------- statistics ----------

// GET /disasters/stats
func (h *DisasterController) Statistics(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	sum, err := h.Svc.Statistics(c.Request.Context(), actor, services.StatsQuery{
		District:     c.Query("kecamatan"),
		Village:      c.Query("desa"),
		DisasterType: c.Query("disaster_type"),
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Statistics retrieved successfully", sum)
}

// GET /disasters/types
func (h *DisasterController) ByType(c *gin.Context) {
	rows, err := h.Svc.CountsByType(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Disaster types retrieved successfully", rows)
}

// GET /disasters/by-month?year=
func (h *DisasterController) ByMonth(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	rows, err := h.Svc.CountsByMonth(c.Request.Context(), actor, year)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Monthly statistics retrieved successfully", rows)
}

// GET /disasters/by-area
func (h *DisasterController) ByArea(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	rows, err := h.Svc.CountsByArea(c.Request.Context(), actor)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Area statistics retrieved successfully", rows)
}
