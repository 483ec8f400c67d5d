package entity

import "time"

// PendingSale es un carrito estacionado bajo un slot de cliente/sesión,
// para retomar la venta más tarde. Un slot guarda a lo sumo un carrito;
// estacionar sobre un slot ocupado lo pisa (last write wins).
// No tiene efectos de stock ni financieros hasta que se confirma.
type PendingSale struct {
	SlotID        string     `json:"slot_id"`
	Items         []CartLine `json:"items"`
	Discount      Discount   `json:"discount"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	CustomerName  string     `json:"customer_name,omitempty"`
	ParkedAt      time.Time  `json:"parked_at"`
}
