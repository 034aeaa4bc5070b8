package entity

import "errors"

// FacilityType คือชนิดสิ่งปลูกสร้างสาธารณะที่นับความเสียหาย
type FacilityType string

const (
	FacilitySchool       FacilityType = "sekolah"
	FacilityHealthCenter FacilityType = "puskesmas"
	FacilityHospital     FacilityType = "rumah_sakit"
	FacilityBridge       FacilityType = "jembatan"
	FacilityRoad         FacilityType = "jalan"
	FacilityMosque       FacilityType = "masjid"
	FacilityChurch       FacilityType = "gereja"
	FacilityTemple       FacilityType = "pura"
	FacilityMonastery    FacilityType = "viara"
	FacilityVillageHall  FacilityType = "kantor_desa"
	FacilityMarket       FacilityType = "pasar"
	FacilityOther        FacilityType = "lainnya"
)

var facilityTypes = map[FacilityType]bool{
	FacilitySchool: true, FacilityHealthCenter: true, FacilityHospital: true,
	FacilityBridge: true, FacilityRoad: true, FacilityMosque: true,
	FacilityChurch: true, FacilityTemple: true, FacilityMonastery: true,
	FacilityVillageHall: true, FacilityMarket: true, FacilityOther: true,
}

func (f FacilityType) Valid() bool { return facilityTypes[f] }

// FacilityDamage นับจำนวนตามระดับความเสียหาย
type FacilityDamage struct {
	Heavy    int `json:"rusak_berat"`
	Moderate int `json:"rusak_sedang"`
	Light    int `json:"rusak_ringan"`
}

// PublicFacilities: facility -> ความเสียหาย
type PublicFacilities map[FacilityType]FacilityDamage

var (
	ErrUnknownFacility  = errors.New("unknown public facility type")
	ErrNegativeFacility = errors.New("public facility counts must be non-negative")
)

func (p PublicFacilities) Validate() error {
	for k, v := range p {
		if !k.Valid() {
			return ErrUnknownFacility
		}
		if v.Heavy < 0 || v.Moderate < 0 || v.Light < 0 {
			return ErrNegativeFacility
		}
	}
	return nil
}
