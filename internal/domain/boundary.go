package domain

// AdminBoundary - административная граница (округ) домена
type AdminBoundary struct {
	Name     string    `json:"name" db:"name"`
	StateFP  string    `json:"statefp" db:"statefp"`
	Geometry *Geometry `json:"-" db:"-"`
}
