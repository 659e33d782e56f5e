package geo

import "math"

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}
