package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationUnassigned ubicación por defecto cuando no se indica una.
const LocationUnassigned = "PENDIENTE"

// UnitCostScale decimales con que se guarda el costo unitario (NUMERIC(12,2)).
const UnitCostScale = 2

// Product representa un producto del inventario. Name es la clave de búsqueda
// (exacta, sensible a mayúsculas) y es única.
type Product struct {
	ID            string
	Name          string
	StockQuantity int // sin piso: puede quedar negativo (sobreventa)
	Location      string
	UnitCost      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
