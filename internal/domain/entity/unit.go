package entity

import "time"

// Unit unidad de medida (kg, pza, litro...).
type Unit struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
