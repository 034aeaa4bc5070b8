package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ilhamriadi/projects.co.id/areas"
	"github.com/ilhamriadi/projects.co.id/configs"
	"github.com/ilhamriadi/projects.co.id/controllers"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/middlewares"
	"github.com/ilhamriadi/projects.co.id/repository"
	"github.com/ilhamriadi/projects.co.id/services"
	"github.com/ilhamriadi/projects.co.id/ws"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hierarchy *areas.Hierarchy, hub *ws.Hub) {
	// AREA_STRICT=false ปิดการตรวจ hierarchy ตอนสร้างรายงาน/สมัคร
	validate := hierarchy
	if !cfg.AreaStrict {
		validate = nil
	}

	// Services
	disasterSvc := services.NewDisasterService(db, validate, hub, cfg.DBTimeout)
	authSvc := services.NewAuthService(repository.NewUserRepository(db), validate, cfg.JWTSecret, cfg.JWTTTL, cfg.DBTimeout)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	disasterCtrl := controllers.NewDisasterController(disasterSvc)
	areaCtrl := controllers.NewAreaController(hierarchy)
	healthCtrl := controllers.NewHealthController(db, cfg.DBTimeout)

	auth := func(roles ...entity.Role) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}
	reviewers := []entity.Role{entity.RoleDistrict, entity.RoleAgency}

	api := r.Group("/api/v1")
	api.GET("/health", healthCtrl.Check)

	// Auth (public)
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", auth())
	{
		aAuth.GET("/profile", authCtrl.Profile)
		aAuth.PUT("/profile", authCtrl.UpdateProfile)
		aAuth.PUT("/change-password", authCtrl.ChangePassword)
		aAuth.POST("/refresh-token", authCtrl.Refresh)
	}

	// bpbd สร้างบัญชีให้ผู้อื่น
	users := api.Group("/users", auth(entity.RoleAgency))
	{
		users.POST("", authCtrl.CreateUser)
		users.PUT("/:id/manages-area", authCtrl.SetManagesArea)
	}

	// Areas (public: หน้า register ต้องใช้)
	api.GET("/areas", areaCtrl.List)
	api.GET("/areas/:district", areaCtrl.District)

	// Disasters (ต้อง login; สิทธิ์ระดับรายงานตรวจใน service)
	d := api.Group("/disasters", auth())
	{
		d.POST("", middlewares.RequireRoles(entity.Roles()...), disasterCtrl.Create)
		d.GET("", disasterCtrl.List)
		d.GET("/search", disasterCtrl.Search)
		d.GET("/types", disasterCtrl.ByType)
		d.GET("/stats", middlewares.RequireRoles(reviewers...), disasterCtrl.Statistics)
		d.GET("/by-month", middlewares.RequireRoles(reviewers...), disasterCtrl.ByMonth)
		d.GET("/by-area", middlewares.RequireRoles(reviewers...), disasterCtrl.ByArea)
		d.GET("/:id", disasterCtrl.Detail)
		d.PUT("/:id", disasterCtrl.Update)
		d.PUT("/:id/status", disasterCtrl.UpdateStatus)
		d.DELETE("/:id", disasterCtrl.Delete)
		d.GET("/:id/activity", disasterCtrl.Activity)
	}

	// Real-time
	r.GET("/ws/disasters", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
