package models

import "time"

const (
	MotoDisponible    = "disponible"
	MotoAlquilada     = "alquilada"
	MotoMantenimiento = "mantenimiento"
)

type Moto struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Marca   string `gorm:"not null" json:"marca"`
	Modelo  string `gorm:"not null" json:"modelo"`
	Patente string `gorm:"uniqueIndex;not null" json:"patente"`
	Anio    int    `gorm:"column:anio" json:"anio"`
	Estado  string `gorm:"default:'disponible'" json:"estado"`

	Contratos []Contrato `gorm:"foreignKey:MotoID" json:"contratos,omitempty"`
}

func (Moto) TableName() string { return "motos" }
