package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QueryStockArgs argumentos de la herramienta query_stock.
type QueryStockArgs struct {
	Name string `json:"name" validate:"required,max=200"`
}

// UpdateStockArgs argumentos de update_stock. Delta positivo = entrada, negativo = salida.
type UpdateStockArgs struct {
	Name  string `json:"name" validate:"required,max=200"`
	Delta int    `json:"delta"`
}

// SuggestSimilarArgs argumentos de suggest_similar.
type SuggestSimilarArgs struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CreateProductArgs argumentos de create_product.
type CreateProductArgs struct {
	Name         string          `json:"name" validate:"required,max=200"`
	InitialStock int             `json:"initial_stock" validate:"min=0"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Location     string          `json:"location" validate:"max=100"`
}

// LookupDocumentsArgs argumentos de lookup_documents.
type LookupDocumentsArgs struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	StockQuantity int             `json:"stock_quantity"`
	Location      string          `json:"location"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse historial paginado de un producto.
type MovementListResponse struct {
	Product ProductResponse    `json:"product"`
	Items   []MovementResponse `json:"items"`
	Page    PageResponse       `json:"page"`
}
