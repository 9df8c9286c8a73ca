package models

import "time"

const (
	PagoPendiente = "pendiente"
	PagoPagado    = "pagado"
	PagoVencido   = "vencido"
)

type Pago struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Monto  float64 `gorm:"not null" json:"monto"`
	Metodo string  `json:"metodo"`
	Estado string  `gorm:"default:'pendiente';index" json:"estado"`

	// Referencia externa que la pasarela devuelve en el webhook.
	Referencia string `gorm:"uniqueIndex" json:"referencia"`

	VencimientoAt *time.Time `gorm:"column:vencimiento_at;index" json:"vencimientoAt,omitempty"`
	PagadoAt      *time.Time `gorm:"column:pagado_at" json:"pagadoAt,omitempty"`

	ContratoID uint      `gorm:"column:contrato_id;index" json:"contratoId"`
	Contrato   *Contrato `gorm:"foreignKey:ContratoID" json:"contrato,omitempty"`

	Factura *Factura `gorm:"foreignKey:PagoID" json:"factura,omitempty"`
}

func (Pago) TableName() string { return "pagos" }
