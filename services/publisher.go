package services

import "github.com/ilhamriadi/projects.co.id/entity"

// Event names
const (
	EventDisasterCreated       = "disaster_created"
	EventDisasterUpdated       = "disaster_updated"
	EventDisasterStatusUpdated = "disaster_status_updated"
	EventDisasterDeleted       = "disaster_deleted"
)

// DisasterEvent คือ payload ที่ส่งออกไปหลัง commit สำเร็จ
type DisasterEvent struct {
	Event    string           `json:"event"`
	Disaster *entity.Disaster `json:"disaster"`
	Actor    entity.Actor     `json:"actor"`
}

// Publisher ต้องไม่ block; ส่งไม่ทันให้ทิ้งแล้ว log เอง
type Publisher interface {
	Publish(ev DisasterEvent, rooms ...string)
}

type nopPublisher struct{}

func (nopPublisher) Publish(DisasterEvent, ...string) {}
