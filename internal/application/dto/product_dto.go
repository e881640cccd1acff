package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El código y la cantidad los asigna el sistema.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=2000"`
	CategoryID  string          `json:"category_id" validate:"omitempty,uuid"`
	UnitID      string          `json:"unit_id" validate:"omitempty,uuid"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Quantity ni Code).
// CategoryID/UnitID con cadena vacía quitan la referencia.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,max=36"`
	UnitID      *string          `json:"unit_id" validate:"omitempty,max=36"`
	Price       *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	UnitID       string          `json:"unit_id,omitempty"`
	UnitName     string          `json:"unit_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Code         string          `json:"code"`
	IsDeleted    bool            `json:"is_deleted"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductQuery parámetros de GET /api/products. Code devuelve un único producto.
type ProductQuery struct {
	Code           string `query:"code" validate:"omitempty,len=13,numeric"`
	CategoryID     string `query:"category" validate:"omitempty,uuid"`
	Search         string `query:"search" validate:"max=100"`
	OrderBy        string `query:"order_by" validate:"omitempty,oneof=category name price quantity"`
	IncludeDeleted bool   `query:"include_deleted"`
	Limit          int    `query:"limit" validate:"min=0,max=100"`
	Offset         int    `query:"offset" validate:"min=0"`
}
