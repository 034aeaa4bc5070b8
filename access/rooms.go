package access

import "github.com/ilhamriadi/projects.co.id/entity"

const AgencyRoom = "agency"

func DistrictRoom(district string) string { return "district:" + district }

func VillageRoom(district, village string) string {
	return "village:" + district + "/" + village
}

// RoomsFor คืน scope key ทั้งหมดที่ event ของรายงานในพื้นที่นี้ต้องส่งไป
func RoomsFor(district, village string) []string {
	return []string{AgencyRoom, DistrictRoom(district), VillageRoom(district, village)}
}

// SubscriptionRoom คือห้องเดียวที่ Actor ฟังได้; "" ถ้าไม่มีสิทธิ์
func SubscriptionRoom(a entity.Actor) string {
	f := ScopeFilter(a)
	switch {
	case f.None:
		return ""
	case f.All:
		return AgencyRoom
	case f.Village != "":
		return VillageRoom(f.District, f.Village)
	default:
		return DistrictRoom(f.District)
	}
}
