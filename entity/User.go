package entity

import "time"

// User คือบัญชีผู้ใช้ของ portal
type User struct {
	ID           string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"column:password_hash;not null" json:"-"`
	FullName     string  `gorm:"size:255;not null" json:"full_name"`
	Role         Role    `gorm:"type:varchar(16);not null;index" json:"role"`
	District     *string `gorm:"column:kecamatan;size:100" json:"kecamatan"`
	Village      *string `gorm:"column:desa;size:100" json:"desa"`
	Phone        *string `gorm:"size:20" json:"phone"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`
	ManagesArea  bool    `gorm:"not null;default:false" json:"manages_area"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor สร้าง Actor จากข้อมูลผู้ใช้
func (u *User) Actor() Actor {
	a := Actor{ID: u.ID, Role: u.Role, ManagesArea: u.ManagesArea}
	if u.District != nil {
		a.District = *u.District
	}
	if u.Village != nil {
		a.Village = *u.Village
	}
	return a
}
