package domain

// Point - точка WGS84
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ScoreRange - минимум и максимум составного балла для легенды
type ScoreRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
