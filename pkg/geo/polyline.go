package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromPoints. encoded polyline (precision 5) of points
func PolylineFromPoints(points []Point) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lon}
	}
	return string(polyline.EncodeCoords(coords))
}

func PointsFromPolyline(s string) ([]Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	points := make([]Point, len(coords))
	for i, c := range coords {
		points[i] = NewPoint(c[0], c[1])
	}
	return points, nil
}
