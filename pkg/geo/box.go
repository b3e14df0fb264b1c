package geo

import "fmt"

// Box. lat/lon aligned area, e.g. departure or arrival area of a voyage
type Box struct {
	MinLat float64 `json:"min_lat" mapstructure:"min_lat" validate:"gte=-90,lte=90"`
	MinLon float64 `json:"min_lon" mapstructure:"min_lon" validate:"gte=-180,lte=180"`
	MaxLat float64 `json:"max_lat" mapstructure:"max_lat" validate:"gte=-90,lte=90,gtefield=MinLat"`
	MaxLon float64 `json:"max_lon" mapstructure:"max_lon" validate:"gte=-180,lte=180,gtefield=MinLon"`
}

// NewBox. box from its north-west and south-east corners
func NewBox(nw, se Point) Box {
	return Box{
		MinLat: se.Lat,
		MinLon: nw.Lon,
		MaxLat: nw.Lat,
		MaxLon: se.Lon,
	}
}

func (b Box) Min() [2]float64 {
	return [2]float64{b.MinLon, b.MinLat}
}

func (b Box) Max() [2]float64 {
	return [2]float64{b.MaxLon, b.MaxLat}
}

func (b Box) String() string {
	return fmt.Sprintf("[%.3f,%.3f .. %.3f,%.3f]", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}
