// Package access ตัดสินสิทธิ์ตาม role และพื้นที่ของ Actor
// ทุก operation ของรายงานต้องผ่านฟังก์ชันในไฟล์นี้
package access

import (
	"github.com/ilhamriadi/projects.co.id/entity"
)

// CanCreate: agency สร้างได้ทุกที่, district เฉพาะ district ตัวเอง,
// village เฉพาะ district+village ตัวเอง
func CanCreate(a entity.Actor, district, village string) bool {
	switch a.Role {
	case entity.RoleAgency:
		return true
	case entity.RoleDistrict:
		return a.District != "" && district == a.District
	case entity.RoleVillage:
		return a.District != "" && a.Village != "" &&
			district == a.District && village == a.Village
	}
	return false
}

// CanMutate ใช้กับ update / status / delete
func CanMutate(a entity.Actor, d *entity.Disaster) bool {
	if d == nil {
		return false
	}
	if a.Role == entity.RoleAgency {
		return true
	}
	if !a.Role.Valid() || !ScopeFilter(a).Allows(d.District, d.Village) {
		return false
	}
	return d.ReporterID == a.ID || a.ManagesArea
}

// CanTransitionStatus: verified/rejected ตั้งได้เฉพาะ agency
func CanTransitionStatus(a entity.Actor, target entity.DisasterStatus) bool {
	if !a.Role.Valid() {
		return false
	}
	if target.Reviewed() {
		return a.Role == entity.RoleAgency
	}
	return true
}

// Filter คือเงื่อนไขการมองเห็นรายงานของ Actor
type Filter struct {
	All      bool
	None     bool
	District string
	Village  string
}

// ScopeFilter ใช้ทั้งใน query และ aggregate; role ไม่รู้จักมองไม่เห็นอะไรเลย
func ScopeFilter(a entity.Actor) Filter {
	switch a.Role {
	case entity.RoleAgency:
		return Filter{All: true}
	case entity.RoleDistrict:
		if a.District == "" {
			return Filter{None: true}
		}
		return Filter{District: a.District}
	case entity.RoleVillage:
		if a.District == "" || a.Village == "" {
			return Filter{None: true}
		}
		return Filter{District: a.District, Village: a.Village}
	}
	return Filter{None: true}
}

// Allows ตรวจแบบ in-memory ว่ารายงานในพื้นที่นี้อยู่ใน scope ไหม
func (f Filter) Allows(district, village string) bool {
	switch {
	case f.None:
		return false
	case f.All:
		return true
	case f.Village != "":
		return district == f.District && village == f.Village
	default:
		return district == f.District
	}
}
