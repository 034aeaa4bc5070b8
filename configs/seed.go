package configs

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilhamriadi/projects.co.id/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// สร้าง bpbd admin ครั้งแรก
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("⚠️ skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}
	created, err := seedUser(db, cfg.AdminEmail, cfg.AdminPassword, "Admin BPBD", entity.RoleAgency, "", "")
	if err != nil {
		return err
	}
	if !created {
		log.Println("ℹ️ admin already exists:", cfg.AdminEmail)
	}
	return nil
}

func seedUser(db *gorm.DB, email, pass, name string, role entity.Role, district, village string) (bool, error) {
	// login หา email แบบตัวพิมพ์เล็กเสมอ
	email = strings.ToLower(strings.TrimSpace(email))
	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	u := entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         role,
		IsActive:     true,
	}
	if district != "" {
		u.District = &district
	}
	if village != "" {
		u.Village = &village
	}
	return true, db.Create(&u).Error
}

// SeedDemo ผู้ใช้ทดลอง 3 role + รายงานตัวอย่าง (เฉพาะ SEED_DEMO=true)
func SeedDemo(db *gorm.DB) error {
	users := []struct {
		email, name       string
		role              entity.Role
		district, village string
	}{
		{"bpbd@bencana.local", "Petugas BPBD", entity.RoleAgency, "", ""},
		{"kecamatan.sintang@bencana.local", "Operator Kecamatan Sintang", entity.RoleDistrict, "Sintang", ""},
		{"desa.kelam@bencana.local", "Operator Desa Kelam", entity.RoleVillage, "Sintang", "Kelam"},
	}
	for _, u := range users {
		if _, err := seedUser(db, u.email, "password123", u.name, u.role, u.district, u.village); err != nil {
			return err
		}
	}

	var reporter entity.User
	if err := db.Where("email = ?", "desa.kelam@bencana.local").First(&reporter).Error; err != nil {
		return err
	}
	var count int64
	db.Model(&entity.Disaster{}).Where("reporter_id = ?", reporter.ID).Count(&count)
	if count > 0 {
		log.Println("ℹ️ demo disasters already seeded")
		return nil
	}

	desc := "Banjir akibat luapan Sungai Kapuas setelah hujan deras dua hari"
	now := time.Now().UTC()
	demo := []entity.Disaster{
		{
			District: "Sintang", Village: "Kelam", DisasterType: entity.DisasterFlood,
			DisasterDate: now.AddDate(0, 0, -3).Truncate(24 * time.Hour), Description: &desc,
			HouseholdsAffected: 25, PeopleAffected: 90, Evacuated: 40, HousesLight: 12,
			PublicFacilities: datatypes.NewJSONType(entity.PublicFacilities{
				entity.FacilitySchool: {Moderate: 1},
			}),
			Status: entity.StatusSubmitted,
		},
		{
			District: "Sintang", Village: "Kelam", DisasterType: entity.DisasterWhirlwind,
			DisasterDate: now.AddDate(0, 0, -10).Truncate(24 * time.Hour),
			HouseholdsAffected: 3, PeopleAffected: 11, HousesHeavy: 2,
			Status: entity.StatusDraft,
		},
	}
	for i := range demo {
		demo[i].ID = uuid.NewString()
		demo[i].ReporterID = reporter.ID
		demo[i].ReportedAt = now
		if err := db.Create(&demo[i]).Error; err != nil {
			return err
		}
	}

	log.Println("✅ demo users and disasters seeded")
	return nil
}
