package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ilhamriadi/projects.co.id/entity"
)

// Claims เป็น custom JWT claims ที่เราจะใช้ในระบบ
type Claims struct {
	UserID      string      `json:"userId"`
	Role        entity.Role `json:"role"`
	District    string      `json:"kecamatan,omitempty"`
	Village     string      `json:"desa,omitempty"`
	ManagesArea bool        `json:"managesArea,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() entity.Actor {
	return entity.Actor{
		ID:          c.UserID,
		Role:        c.Role,
		District:    c.District,
		Village:     c.Village,
		ManagesArea: c.ManagesArea,
	}
}

// GenerateToken สร้าง JWT สำหรับผู้ใช้
func GenerateToken(u *entity.User, secret string, ttl time.Duration) (string, error) {
	a := u.Actor()
	now := time.Now()
	claims := &Claims{
		UserID:      a.ID,
		Role:        a.Role,
		District:    a.District,
		Village:     a.Village,
		ManagesArea: a.ManagesArea,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // อายุ token
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

var ErrInvalidToken = errors.New("invalid token")

// ParseToken ตรวจลายเซ็น + อายุ แล้วคืน claims
func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
