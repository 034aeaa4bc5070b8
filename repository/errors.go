package repository

import (
	"errors"

	"github.com/ilhamriadi/projects.co.id/access"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"gorm.io/gorm"
)

// dbErr แปลง error จาก DB เป็น InfrastructureError ที่ขอบ repository
func dbErr(err error) error {
	if err == nil {
		return nil
	}
	return apperr.Infra(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// areaScope ใส่เงื่อนไขพื้นที่ตาม access.Filter ให้ query ของ disasters
func areaScope(f access.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case f.None:
			return db.Where("1 = 0")
		case f.All:
			return db
		case f.Village != "":
			return db.Where("disasters.kecamatan = ? AND disasters.desa = ?", f.District, f.Village)
		default:
			return db.Where("disasters.kecamatan = ?", f.District)
		}
	}
}
