package resp

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
)

// Envelope คือรูปแบบ response เดียวของทุก endpoint
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
}

func OK(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg, Data: data})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: msg, Data: data})
}

func Fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: msg, Code: code})
}

func BadRequest(c *gin.Context, msg string) {
	Fail(c, http.StatusBadRequest, apperr.CodeValidation, msg)
}

func Unauthorized(c *gin.Context, code, msg string) {
	Fail(c, http.StatusUnauthorized, code, msg)
}

func Forbidden(c *gin.Context, msg string) {
	Fail(c, http.StatusForbidden, apperr.CodeInsufficientPermissions, msg)
}

// ServerError ไม่ส่งรายละเอียด error ภายในออกไปหา client
func ServerError(c *gin.Context, err error) {
	log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Fail(c, http.StatusInternalServerError, apperr.CodeInternal, "internal server error")
}

// Error แปลง error จาก service เป็น status + envelope
func Error(c *gin.Context, err error) {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.KindInfrastructure {
		ServerError(c, err)
		return
	}
	Fail(c, e.Kind.HTTPStatus(), e.Code, e.Message)
}
