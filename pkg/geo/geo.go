// Package geo resolves district names to coordinates and computes
// great-circle distances between points.
package geo

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// DistanceKm returns the haversine distance between two points in
// kilometers, rounded to 2 decimals. Any missing (zero) coordinate yields
// +Inf so the pair can never pass a distance threshold check.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == 0 || lon1 == 0 || lat2 == 0 || lon2 == 0 {
		return math.Inf(1)
	}

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// districtEntry maps a normalized district name to its centroid.
var districts = []struct {
	name  string
	point Point
}{
	{"miraflores", Point{-12.1211, -77.0297}},
	{"san isidro", Point{-12.0977, -77.0365}},
	{"surco", Point{-12.1358, -76.9933}},
	{"santiago de surco", Point{-12.1358, -76.9933}},
	{"san borja", Point{-12.1089, -77.0003}},
	{"la molina", Point{-12.0865, -76.9057}},
	{"barranco", Point{-12.1405, -77.0219}},
	{"chorrillos", Point{-12.1683, -77.0237}},
	{"san miguel", Point{-12.0776, -77.0934}},
	{"magdalena", Point{-12.0908, -77.0749}},
	{"pueblo libre", Point{-12.0739, -77.0626}},
	{"jesus maria", Point{-12.0781, -77.0489}},
	{"lince", Point{-12.0866, -77.0364}},
	{"san luis", Point{-12.0739, -76.9964}},
	{"la victoria", Point{-12.0661, -77.0159}},
	{"cercado de lima", Point{-12.0464, -77.0428}},
	{"lima", Point{-12.0464, -77.0428}},
	{"brena", Point{-12.0566, -77.0504}},
	{"rimac", Point{-12.0294, -77.0272}},
	{"san juan de lurigancho", Point{-11.9775, -77.0094}},
	{"san juan de miraflores", Point{-12.1554, -76.9706}},
	{"villa el salvador", Point{-12.2135, -76.9371}},
	{"villa maria del triunfo", Point{-12.1608, -76.9396}},
	{"san martin de porres", Point{-12.0117, -77.0746}},
	{"los olivos", Point{-11.9907, -77.0707}},
	{"independencia", Point{-11.9898, -77.0545}},
	{"comas", Point{-11.9345, -77.0493}},
	{"carabayllo", Point{-11.8897, -77.0338}},
	{"puente piedra", Point{-11.8612, -77.0745}},
	{"ate", Point{-12.0261, -76.9189}},
	{"santa anita", Point{-12.0433, -76.9714}},
	{"el agustino", Point{-12.0441, -76.9994}},
	{"surquillo", Point{-12.1119, -77.0168}},
	{"callao", Point{-12.0508, -77.1260}},
	{"bellavista", Point{-12.0622, -77.1106}},
	{"la perla", Point{-12.0681, -77.1189}},
	{"ventanilla", Point{-11.8754, -77.1532}},
	{"lurin", Point{-12.2752, -76.8699}},
	{"pachacamac", Point{-12.2283, -76.8593}},
}

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize lowercases, trims and strips diacritics from a district name.
func Normalize(name string) string {
	out, _, err := transform.String(stripAccents, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(name))
	}
	return out
}

// ResolveDistrict matches a district name against the gazetteer using
// substring containment in either direction and returns the first match.
// Unknown or empty input returns nil; callers must decline to match.
func ResolveDistrict(name string) *Point {
	needle := Normalize(name)
	if needle == "" {
		return nil
	}
	for _, d := range districts {
		if strings.Contains(needle, d.name) || strings.Contains(d.name, needle) {
			p := d.point
			return &p
		}
	}
	return nil
}
