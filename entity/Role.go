package entity

// Role ของผู้ใช้: desa (village), kecamatan (district), bpbd (agency)
type Role string

const (
	RoleVillage  Role = "desa"
	RoleDistrict Role = "kecamatan"
	RoleAgency   Role = "bpbd"
)

func (r Role) Valid() bool {
	switch r {
	case RoleVillage, RoleDistrict, RoleAgency:
		return true
	}
	return false
}

func Roles() []Role {
	return []Role{RoleVillage, RoleDistrict, RoleAgency}
}
