// Package testutil ตัวช่วยสำหรับ test: sqlite in-memory + fixture ผู้ใช้
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ilhamriadi/projects.co.id/configs"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB เปิด sqlite in-memory แยกต่อ test แล้ว migrate
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))

	t.Cleanup(func() { _ = configs.CloseDB(db) })
	return db
}

// NewUser สร้างผู้ใช้ตาม role/พื้นที่ แล้วคืน Actor ของเขา
func NewUser(t testing.TB, db *gorm.DB, role entity.Role, district, village string) entity.Actor {
	t.Helper()
	u := entity.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "x",
		FullName:     fmt.Sprintf("%s %s %s", role, district, village),
		Role:         role,
		IsActive:     true,
	}
	if district != "" {
		u.District = &district
	}
	if village != "" {
		u.Village = &village
	}
	require.NoError(t, db.Create(&u).Error)
	return u.Actor()
}
