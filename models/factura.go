package models

import "time"

const (
	FacturaEmitida = "emitida"
	FacturaAnulada = "anulada"
)

const (
	AfipPendiente = "pendiente"
	AfipEnviado   = "enviado"
)

// Factura se genera a lo sumo una vez por pago: el índice único sobre
// pago_id es la garantía real, no el chequeo previo del job.
type Factura struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Numero string  `gorm:"uniqueIndex;not null" json:"numero"`
	Monto  float64 `json:"monto"`
	Estado string  `gorm:"default:'emitida'" json:"estado"`

	EmitidaAt      time.Time  `gorm:"column:emitida_at" json:"emitidaAt"`
	EmailEnviadoAt *time.Time `gorm:"column:email_enviado_at" json:"emailEnviadoAt,omitempty"`

	// Datos fiscales de AFIP (CAE y su vencimiento).
	AfipEstado     string     `gorm:"column:afip_estado;default:'pendiente'" json:"afipEstado"`
	CAE            string     `gorm:"column:cae" json:"cae"`
	CAEVencimiento *time.Time `gorm:"column:cae_vencimiento" json:"caeVencimiento,omitempty"`

	ContratoID uint      `gorm:"column:contrato_id;index" json:"contratoId"`
	Contrato   *Contrato `gorm:"foreignKey:ContratoID" json:"contrato,omitempty"`

	PagoID uint  `gorm:"column:pago_id;uniqueIndex" json:"pagoId"`
	Pago   *Pago `gorm:"foreignKey:PagoID" json:"pago,omitempty"`
}

func (Factura) TableName() string { return "facturas" }
