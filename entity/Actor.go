package entity

import "errors"

// Actor คือตัวตนที่ผ่านการยืนยันแล้วของผู้เรียก ใช้ตัดสินสิทธิ์ทุก operation
type Actor struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	District string `json:"kecamatan,omitempty"`
	Village  string `json:"desa,omitempty"`
	// ManagesArea ให้สิทธิ์แก้รายงานของคนอื่นในพื้นที่ตัวเอง (ต้องให้สิทธิ์แยก)
	ManagesArea bool `json:"manages_area,omitempty"`
}

var (
	ErrActorNoID          = errors.New("actor id is required")
	ErrActorRole          = errors.New("actor role is invalid")
	ErrActorNeedsDistrict = errors.New("actor district is required for this role")
	ErrActorNeedsVillage  = errors.New("actor village is required for this role")
)

// Validate: village ต้องมีทั้ง district+village, district ต้องมี district
func (a Actor) Validate() error {
	if a.ID == "" {
		return ErrActorNoID
	}
	switch a.Role {
	case RoleVillage:
		if a.District == "" {
			return ErrActorNeedsDistrict
		}
		if a.Village == "" {
			return ErrActorNeedsVillage
		}
	case RoleDistrict:
		if a.District == "" {
			return ErrActorNeedsDistrict
		}
	case RoleAgency:
	default:
		return ErrActorRole
	}
	return nil
}
