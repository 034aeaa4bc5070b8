package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/ilhamriadi/projects.co.id/pkg/resp"
	"github.com/ilhamriadi/projects.co.id/services"
)

// ---------- DTO ----------

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"full_name" binding:"required"`
	Role        string `json:"role" binding:"required"`
	District    string `json:"kecamatan"`
	Village     string `json:"desa"`
	Phone       string `json:"phone"`
	ManagesArea bool   `json:"manages_area"` // รับเฉพาะผ่าน POST /users
}

type ManagesAreaRequest struct {
	ManagesArea *bool `json:"manages_area" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (r RegisterRequest) input() services.RegisterInput {
	return services.RegisterInput{
		Email: r.Email, Password: r.Password, FullName: r.FullName, Role: r.Role,
		District: r.District, Village: r.Village, Phone: r.Phone,
		ManagesArea: r.ManagesArea,
	}
}

type AuthController struct {
	Svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

// POST /auth/register (สมัครเอง: desa/kecamatan เท่านั้น)
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	res, err := a.Svc.SignUp(c.Request.Context(), req.input())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "User registered successfully", res)
}

// POST /users (bpbd สร้างบัญชีให้คนอื่น รวมถึง bpbd)
func (a *AuthController) CreateUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Svc.Register(c.Request.Context(), &actor, req.input())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "User created successfully", user)
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	res, err := a.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Login successful", res)
}

// GET /auth/profile (ต้อง login)
func (a *AuthController) Profile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	user, err := a.Svc.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Profile retrieved successfully", user)
}

// PUT /auth/profile
func (a *AuthController) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Svc.UpdateProfile(c.Request.Context(), actor.ID, services.UpdateProfileInput{
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Profile updated successfully", user)
}

// PUT /auth/change-password
func (a *AuthController) ChangePassword(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := a.Svc.ChangePassword(c.Request.Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Password changed successfully", nil)
}

// POST /auth/refresh-token
func (a *AuthController) Refresh(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	res, err := a.Svc.RefreshToken(c.Request.Context(), actor.ID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Token refreshed successfully", res)
}

// PUT /users/:id/manages-area (bpbd)
func (a *AuthController) SetManagesArea(c *gin.Context) {
	var req ManagesAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Svc.SetManagesArea(c.Request.Context(), c.Param("id"), *req.ManagesArea)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Area management updated successfully", user)
}
