package dto

import "time"

// CatalogRequest entrada para crear/actualizar categorías y unidades.
type CatalogRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// CatalogResponse salida de una categoría o unidad.
type CatalogResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
