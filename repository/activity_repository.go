package repository

import (
	"context"

	"github.com/ilhamriadi/projects.co.id/entity"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// Create ต้องเรียกใน tx เดียวกับการแก้รายงาน
func (r *ActivityRepository) Create(tx *gorm.DB, log *entity.ActivityLog) error {
	return dbErr(tx.Create(log).Error)
}

// ListByDisaster ใหม่สุดก่อน
func (r *ActivityRepository) ListByDisaster(ctx context.Context, disasterID string, limit int) ([]entity.ActivityLog, error) {
	var out []entity.ActivityLog
	err := r.DB.WithContext(ctx).
		Where("disaster_id = ?", disasterID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return out, nil
}
