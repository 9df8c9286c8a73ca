package models

import (
	"time"

	"gorm.io/datatypes"
)

// Niveles de riesgo que devuelve el verificador de identidad.
const (
	RiesgoBajo  = "LOW"
	RiesgoMedio = "MEDIUM"
	RiesgoAlto  = "HIGH"
)

// Verificacion es el registro de auditoría de las validaciones de DNI.
// Payload guarda la respuesta cruda del verificador en JSONB.
type Verificacion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	DNI         string         `gorm:"column:dni;index" json:"dni"`
	Nombre      string         `json:"nombre"`
	Verificado  bool           `json:"verificado"`
	NivelRiesgo string         `gorm:"column:nivel_riesgo" json:"nivelRiesgo"`
	Payload     datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`

	ClienteID *uint `gorm:"column:cliente_id;index" json:"clienteId,omitempty"`
}

func (Verificacion) TableName() string { return "verificaciones" }
