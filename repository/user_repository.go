package repository

import (
	"context"
	"errors"

	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"gorm.io/gorm"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

var errUserNotFound = apperr.NotFound(apperr.CodeUserNotFound, "User not found")

// หาผู้ใช้จาก email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if isNotFound(err) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, dbErr(err)
	}
	return &user, nil
}

// นับจำนวน user ที่มี email ซ้ำ
func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, dbErr(err)
	}
	return count, nil
}

// สร้าง user ใหม่; email ซ้ำ (race กับอีก request) = conflict
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(apperr.CodeEmailExists, "Email already registered")
	}
	return dbErr(err)
}

// อัปเดต user
func (r *UserRepository) Update(ctx context.Context, userID string, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return errUserNotFound
	}
	return nil
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if isNotFound(err) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, dbErr(err)
	}
	return &user, nil
}
