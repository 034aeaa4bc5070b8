package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Activity actions
const (
	ActionDisasterCreated       = "disaster_created"
	ActionDisasterUpdated       = "disaster_updated"
	ActionDisasterStatusUpdated = "disaster_status_updated"
	ActionDisasterDeleted       = "disaster_deleted"
)

// ActivityLog บันทึกทุกการเปลี่ยนแปลงของรายงาน
type ActivityLog struct {
	ID         string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string            `gorm:"type:varchar(36);not null;index" json:"user_id"`
	DisasterID string            `gorm:"type:varchar(36);not null;index" json:"disaster_id"`
	Action     string            `gorm:"size:50;not null" json:"action"`
	Details    datatypes.JSONMap `json:"details"`
	CreatedAt  time.Time         `json:"created_at"`
}
