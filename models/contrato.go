package models

import "time"

// Estados del ciclo de vida de un contrato. "vencido" lo asignan los jobs
// cuando pasa la fecha de fin; "finalizado" es un cierre manual.
const (
	ContratoPendiente  = "pendiente"
	ContratoActivo     = "activo"
	ContratoVencido    = "vencido"
	ContratoFinalizado = "finalizado"
)

// Cadencias de pago de un contrato.
const (
	PagoMensual = "mensual"
	PagoSemanal = "semanal"
)

// Contrato vincula un cliente con una moto por un rango de fechas y un
// plan de precios calculado al momento de la creación.
type Contrato struct {
	ID        uint      `gorm:"primaryKey"        json:"id"`
	CreatedAt time.Time `                         json:"createdAt"`
	UpdatedAt time.Time `                         json:"updatedAt"`

	FechaInicio time.Time `gorm:"column:fecha_inicio"      json:"fechaInicio"`
	FechaFin    time.Time `gorm:"column:fecha_fin;index"   json:"fechaFin"`

	TipoPago          string  `gorm:"column:tipo_pago;default:'mensual'" json:"tipoPago"`
	DuracionMeses     int     `gorm:"column:duracion_meses"              json:"duracionMeses"`
	PrecioMensual     float64 `gorm:"column:precio_mensual"              json:"precioMensual"`
	PrecioSemanal     float64 `gorm:"column:precio_semanal"              json:"precioSemanal"`
	PrecioTotal       float64 `gorm:"column:precio_total"                json:"precioTotal"`
	DescuentoDuracion float64 `gorm:"column:descuento_duracion"          json:"descuentoDuracion"`
	DescuentoSemanal  float64 `gorm:"column:descuento_semanal"           json:"descuentoSemanal"`

	Estado string `gorm:"default:'pendiente';index" json:"estado"`

	ClienteID uint     `gorm:"column:cliente_id;index" json:"clienteId"`
	Cliente   *Cliente `gorm:"foreignKey:ClienteID"    json:"cliente,omitempty"`

	MotoID uint  `gorm:"column:moto_id;index" json:"motoId"`
	Moto   *Moto `gorm:"foreignKey:MotoID"    json:"moto,omitempty"`

	Pagos []Pago `gorm:"foreignKey:ContratoID" json:"pagos,omitempty"`
}

func (Contrato) TableName() string { return "contratos" }
