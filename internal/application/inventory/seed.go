package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
)

// SeedCatalog catálogo inicial de ferretería usado por Initialize.
func SeedCatalog() []*entity.Product {
	return []*entity.Product{
		{Name: "Martillo Bicolor 500g", StockQuantity: 25, Location: "B2-01", UnitCost: decimal.RequireFromString("18.50")},
		{Name: "Tornillo M4 x 10mm", StockQuantity: 500, Location: "A1-03", UnitCost: decimal.RequireFromString("0.05")},
		{Name: "Destornillador Plano 6mm", StockQuantity: 40, Location: "B2-04", UnitCost: decimal.RequireFromString("4.75")},
		{Name: "Cinta Métrica 5m", StockQuantity: 30, Location: "C1-02", UnitCost: decimal.RequireFromString("7.90")},
		{Name: `Llave Inglesa 8"`, StockQuantity: 12, Location: "B3-02", UnitCost: decimal.RequireFromString("12.30")},
	}
}
