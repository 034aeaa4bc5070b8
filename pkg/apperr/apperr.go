package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind คือหมวดของ error ที่ layer บนใช้ตัดสิน HTTP status
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindAuthorization
	KindNotFound
	KindConflict
	KindInfrastructure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInfrastructure:
		return "infrastructure"
	}
	return "unknown"
}

func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Machine-readable codes
const (
	CodeValidation              = "VALIDATION_ERROR"
	CodeInvalidDisasterType     = "INVALID_DISASTER_TYPE"
	CodeInvalidCoordinates      = "INVALID_COORDINATES"
	CodeInvalidNumericValue     = "INVALID_NUMERIC_VALUE"
	CodeInvalidDate             = "INVALID_DATE"
	CodeInvalidStatus           = "INVALID_STATUS"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeInvalidArea             = "INVALID_AREA"
	CodeInvalidRole             = "INVALID_ROLE"
	CodeInvalidPhone            = "INVALID_PHONE"
	CodeAreaAccessDenied        = "AREA_ACCESS_DENIED"
	CodeDisasterAccessDenied    = "DISASTER_ACCESS_DENIED"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeDisasterNotFound        = "DISASTER_NOT_FOUND"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeAreaNotFound            = "AREA_NOT_FOUND"
	CodeStatusConflict          = "STATUS_CONFLICT"
	CodeEmailExists             = "EMAIL_EXISTS"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeTokenRequired           = "TOKEN_REQUIRED"
	CodeInvalidToken            = "INVALID_TOKEN"
	CodeInternal                = "INTERNAL_ERROR"
)

// Error คือ error ที่มี kind + code ติดมาด้วย
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable บอกว่า caller ลองใหม่ได้ (เฉพาะปัญหา infra)
func (e *Error) Retryable() bool { return e.Kind == KindInfrastructure }

func New(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Validation(code, msg string) *Error     { return New(KindValidation, code, msg) }
func Unauthenticated(code, msg string) *Error { return New(KindUnauthenticated, code, msg) }
func Forbidden(code, msg string) *Error      { return New(KindAuthorization, code, msg) }
func NotFound(code, msg string) *Error       { return New(KindNotFound, code, msg) }
func Conflict(code, msg string) *Error       { return New(KindConflict, code, msg) }

// Infra ห่อ error จาก storage/transport; ถ้าเป็น *Error อยู่แล้วคืนตัวเดิม
func Infra(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindInfrastructure, Code: CodeInternal, Message: "internal server error", Err: err}
}

// As ดึง *Error ออกจาก chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf คืน kind ของ err; error ธรรมดานับเป็น infrastructure
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInfrastructure
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
