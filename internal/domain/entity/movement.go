package entity

import "time"

// Tipos de movimiento. El signo del delta se codifica en el tipo, no en la cantidad.
const (
	MovementTypeIN  = "ENTRADA"
	MovementTypeOUT = "SALIDA"
)

// Movement registro de auditoría de un cambio de stock. Solo se inserta, nunca se modifica.
type Movement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int // siempre positivo
	CreatedAt time.Time
}

// NewMovement construye el movimiento que corresponde a un delta distinto de cero.
func NewMovement(productID string, delta int, at time.Time) *Movement {
	mov := &Movement{ProductID: productID, Type: MovementTypeIN, Quantity: delta, CreatedAt: at}
	if delta < 0 {
		mov.Type = MovementTypeOUT
		mov.Quantity = -delta
	}
	return mov
}

// SignedQuantity devuelve la cantidad con signo (negativa para salidas).
func (m *Movement) SignedQuantity() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
