package entity

// DisasterStatus คือสถานะใน lifecycle ของรายงาน
type DisasterStatus string

const (
	StatusDraft     DisasterStatus = "draft"
	StatusSubmitted DisasterStatus = "submitted"
	StatusVerified  DisasterStatus = "verified"
	StatusRejected  DisasterStatus = "rejected"
)

func DisasterStatuses() []DisasterStatus {
	return []DisasterStatus{StatusDraft, StatusSubmitted, StatusVerified, StatusRejected}
}

func (s DisasterStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// Reviewed = verified หรือ rejected (ตั้งได้เฉพาะ agency)
func (s DisasterStatus) Reviewed() bool {
	return s == StatusVerified || s == StatusRejected
}

// Initial = สถานะที่ใช้ตอนสร้างรายงานได้
func (s DisasterStatus) Initial() bool {
	return s == StatusDraft || s == StatusSubmitted
}

// ตาราง transition ที่เดียวของระบบ
var statusTransitions = map[DisasterStatus][]DisasterStatus{
	StatusDraft:     {StatusDraft, StatusSubmitted},
	StatusSubmitted: {StatusDraft, StatusSubmitted, StatusVerified, StatusRejected},
	StatusVerified:  {StatusDraft, StatusSubmitted},
	StatusRejected:  {StatusDraft, StatusSubmitted},
}

// CanTransition ตรวจว่าย้ายจาก from ไป to ได้ไหม (ไม่สนใจ role)
func CanTransition(from, to DisasterStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
