package models

import "time"

// Tipos de alerta que emiten los jobs y los endpoints de estado.
const (
	AlertaContratoPorVencer = "contrato_por_vencer"
	AlertaPagoVencido       = "pago_vencido"
	AlertaFacturaEmitida    = "factura_emitida"
	AlertaFacturaAfip       = "factura_afip"
)

// Alerta es una notificación append-only para el personal. El registro de
// verificaciones KYC vive en su propia tabla (Verificacion), no acá.
type Alerta struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Tipo    string `gorm:"index" json:"tipo"`
	Mensaje string `json:"mensaje"`
	Leida   bool   `gorm:"default:false;index" json:"leida"`

	ContratoID *uint `gorm:"column:contrato_id;index" json:"contratoId,omitempty"`
	PagoID     *uint `gorm:"column:pago_id;index" json:"pagoId,omitempty"`
}

func (Alerta) TableName() string { return "alertas" }
