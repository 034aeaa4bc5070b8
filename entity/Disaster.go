package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Disaster คือรายงานภัยพิบัติหนึ่งรายการ
type Disaster struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ReporterID string `gorm:"type:varchar(36);not null;index" json:"reporter_id"`
	Reporter   *User  `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`

	// พื้นที่
	District         string   `gorm:"column:kecamatan;size:100;not null;index:idx_disasters_area" json:"kecamatan"`
	Village          string   `gorm:"column:desa;size:100;not null;index:idx_disasters_area" json:"desa"`
	SubVillage       *string  `gorm:"column:dusun;size:100" json:"dusun"`
	NeighborhoodUnit *string  `gorm:"column:rt_rw;size:20" json:"rt_rw"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`

	DisasterType DisasterType `gorm:"type:varchar(32);not null;index" json:"disaster_type"`
	DisasterDate time.Time    `gorm:"type:date;not null;index" json:"disaster_date"`
	Description  *string      `gorm:"type:text" json:"description"`

	// ผลกระทบ (ไม่ติดลบ)
	HouseholdsAffected int `gorm:"column:kk_affected;not null" json:"kk_affected"`
	PeopleAffected     int `gorm:"column:jiwa_affected;not null" json:"jiwa_affected"`
	Dead               int `gorm:"not null" json:"dead"`
	Injured            int `gorm:"not null" json:"injured"`
	Missing            int `gorm:"not null" json:"missing"`
	Evacuated          int `gorm:"not null" json:"evacuated"`
	HousesHeavy        int `gorm:"column:house_heavily_damaged;not null" json:"house_heavily_damaged"`
	HousesModerate     int `gorm:"column:house_moderately_damaged;not null" json:"house_moderately_damaged"`
	HousesLight        int `gorm:"column:house_lightly_damaged;not null" json:"house_lightly_damaged"`

	PublicFacilities datatypes.JSONType[PublicFacilities] `gorm:"column:public_facilities" json:"public_facilities"`

	Status          DisasterStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	VerifiedBy      *string        `gorm:"type:varchar(36)" json:"verified_by"`
	Verifier        *User          `gorm:"foreignKey:VerifiedBy" json:"verifier,omitempty"`
	VerifiedAt      *time.Time     `json:"verified_at"`
	RejectionReason *string        `gorm:"type:text" json:"rejection_reason"`

	ReportedAt time.Time      `gorm:"not null;index" json:"reported_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
