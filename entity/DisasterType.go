package entity

type DisasterType string

const (
	DisasterFlood      DisasterType = "banjir"
	DisasterLandslide  DisasterType = "longsor"
	DisasterFire       DisasterType = "kebakaran"
	DisasterWhirlwind  DisasterType = "angin_puting_beliung"
	DisasterEarthquake DisasterType = "gempa"
	DisasterDrought    DisasterType = "kekeringan"
	DisasterOther      DisasterType = "lainnya"
)

var disasterTypes = []DisasterType{
	DisasterFlood, DisasterLandslide, DisasterFire, DisasterWhirlwind,
	DisasterEarthquake, DisasterDrought, DisasterOther,
}

func DisasterTypes() []DisasterType {
	out := make([]DisasterType, len(disasterTypes))
	copy(out, disasterTypes)
	return out
}

func (t DisasterType) Valid() bool {
	for _, v := range disasterTypes {
		if v == t {
			return true
		}
	}
	return false
}
