package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilhamriadi/projects.co.id/areas"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/ilhamriadi/projects.co.id/repository"
	"github.com/ilhamriadi/projects.co.id/utils"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 6
	phoneRegion    = "ID"
)

// AuthService จัดการ business logic ของการ login/register
type AuthService struct {
	userRepo  *repository.UserRepository
	areas     *areas.Hierarchy
	jwtSecret string
	jwtTTL    time.Duration
	timeout   time.Duration
}

func NewAuthService(repo *repository.UserRepository, hierarchy *areas.Hierarchy, secret string, ttl, timeout time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		areas:     hierarchy,
		jwtSecret: secret,
		jwtTTL:    ttl,
		timeout:   timeout,
	}
}

func (s *AuthService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	Role        string
	District    string
	Village     string
	Phone       string
	// สิทธิ์แก้รายงานของคนอื่นในพื้นที่ตัวเอง; bpbd เท่านั้นที่ให้ได้
	ManagesArea bool
}

type UpdateProfileInput struct {
	FullName *string
	Phone    *string
}

// AuthResult = token + ผู้ใช้
type AuthResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// NormalizePhone แปลงเบอร์เป็น E.164 (ค่า default region = ID)
func NormalizePhone(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	num, err := phonenumbers.Parse(raw, phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return nil, apperr.Validation(apperr.CodeInvalidPhone, "Invalid phone number")
	}
	e164 := phonenumbers.Format(num, phonenumbers.E164)
	return &e164, nil
}

// normalizeArea บังคับกฎพื้นที่ตาม role แล้วคืนค่าที่จะเก็บ
func (s *AuthService) normalizeArea(role entity.Role, district, village string) (*string, *string, error) {
	district, village = strings.TrimSpace(district), strings.TrimSpace(village)
	switch role {
	case entity.RoleVillage:
		if district == "" || village == "" {
			return nil, nil, apperr.Validation(apperr.CodeValidation, "Desa users require kecamatan and desa")
		}
		if s.areas != nil {
			d, v, ok := s.areas.Canonical(district, village)
			if !ok {
				return nil, nil, apperr.Validation(apperr.CodeInvalidArea, "Unknown kecamatan/desa combination")
			}
			district, village = d, v
		}
		return &district, &village, nil
	case entity.RoleDistrict:
		if district == "" {
			return nil, nil, apperr.Validation(apperr.CodeValidation, "Kecamatan users require kecamatan")
		}
		if s.areas != nil {
			d, ok := s.areas.CanonicalDistrict(district)
			if !ok {
				return nil, nil, apperr.Validation(apperr.CodeInvalidArea, "Unknown kecamatan")
			}
			district = d
		}
		return &district, nil, nil
	}
	return nil, nil, nil
}

// Register สร้าง user ใหม่; บัญชี bpbd สร้างได้โดย bpbd เท่านั้น (creator = nil คือสมัครเอง)
func (s *AuthService) Register(ctx context.Context, creator *entity.Actor, in RegisterInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.FullName)
	if email == "" || name == "" {
		return nil, apperr.Validation(apperr.CodeValidation, "email and full_name are required")
	}
	if len(in.Password) < MinPasswordLen {
		return nil, apperr.Validation(apperr.CodeValidation, "Password must be at least 6 characters")
	}
	role := entity.Role(in.Role)
	if !role.Valid() {
		return nil, apperr.Validation(apperr.CodeInvalidRole, "Role must be one of desa, kecamatan, bpbd")
	}
	if role == entity.RoleAgency && (creator == nil || creator.Role != entity.RoleAgency) {
		return nil, apperr.Forbidden(apperr.CodeInsufficientPermissions, "Only BPBD can create BPBD accounts")
	}
	if in.ManagesArea && (creator == nil || creator.Role != entity.RoleAgency) {
		return nil, apperr.Forbidden(apperr.CodeInsufficientPermissions, "Only BPBD can grant area management")
	}
	district, village, err := s.normalizeArea(role, in.District, in.Village)
	if err != nil {
		return nil, err
	}
	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// ตรวจซ้ำ email
	count, err := s.userRepo.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict(apperr.CodeEmailExists, "Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Infra(err)
	}
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     name,
		Role:         role,
		District:     district,
		Village:      village,
		Phone:        phone,
		IsActive:     true,
		ManagesArea:  in.ManagesArea && role != entity.RoleAgency,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignUp สมัครเองแล้วออก token ให้เลย
func (s *AuthService) SignUp(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	user, err := s.Register(ctx, nil, in)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(u, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, apperr.Infra(err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

var errInvalidCredentials = apperr.Unauthenticated(apperr.CodeInvalidCredentials, "Invalid email or password")

// Login ตรวจสอบ user + สร้าง JWT
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperr.Unauthenticated(apperr.CodeInvalidCredentials, "Account is deactivated")
	}
	return s.issue(user)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile แก้ได้แค่ชื่อกับเบอร์โทร; role/พื้นที่ไม่ให้แก้เอง
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	updates := map[string]any{}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, apperr.Validation(apperr.CodeValidation, "full_name must not be empty")
		}
		updates["full_name"] = name
	}
	if in.Phone != nil {
		phone, err := NormalizePhone(*in.Phone)
		if err != nil {
			return nil, err
		}
		updates["phone"] = phone
	}
	if len(updates) == 0 {
		return nil, apperr.Validation(apperr.CodeValidation, "No valid fields to update")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < MinPasswordLen {
		return apperr.Validation(apperr.CodeValidation, "Password must be at least 6 characters")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperr.Validation(apperr.CodeInvalidCredentials, "Current password is incorrect")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Infra(err)
	}
	return s.userRepo.Update(ctx, userID, map[string]any{"password_hash": string(hashed)})
}

// SetManagesArea ให้/ถอนสิทธิ์จัดการรายงานทั้งพื้นที่ (มีผลเมื่อผู้ใช้ refresh token หรือ login ใหม่)
func (s *AuthService) SetManagesArea(ctx context.Context, userID string, grant bool) (*entity.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == entity.RoleAgency {
		return nil, apperr.Validation(apperr.CodeInvalidRole, "BPBD accounts already manage every area")
	}
	if err := s.userRepo.Update(ctx, userID, map[string]any{"manages_area": grant}); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, userID)
}

// RefreshToken ออก token ใหม่จากข้อมูลล่าสุดใน DB
func (s *AuthService) RefreshToken(ctx context.Context, userID string) (*AuthResult, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.Unauthenticated(apperr.CodeInvalidToken, "Account is deactivated")
	}
	return s.issue(user)
}
