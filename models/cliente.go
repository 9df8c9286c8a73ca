package models

import "time"

type Cliente struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Nombre string `gorm:"not null" json:"nombre"`
	// Puntero para que los clientes creados desde el registro público
	// (sin documento todavía) no choquen con el índice único.
	DNI      *string `gorm:"column:dni;uniqueIndex" json:"dni,omitempty"`
	Telefono string  `json:"telefono"`
	Email    string  `json:"email"`

	UsuarioID *uint `gorm:"index" json:"usuarioId,omitempty"`

	Contratos []Contrato `gorm:"foreignKey:ClienteID" json:"contratos,omitempty"`
}

func (Cliente) TableName() string { return "clientes" }
