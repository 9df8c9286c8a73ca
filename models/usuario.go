package models

import "time"

// Usuario es la identidad que inicia sesión. El rol vive en el propio
// usuario: no hay tabla de permisos, el gate compara contra el enum Rol.
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Nombre    string `json:"nombre"`
	Password  string `json:"-"`
	Rol       Rol    `gorm:"type:varchar(16);default:'cliente'" json:"rol"`
	Proveedor string `gorm:"default:'credenciales'" json:"proveedor"`
	Activo    bool   `gorm:"default:true" json:"activo"`

	// Vínculo opcional uno a uno con el perfil de cliente.
	Cliente *Cliente `gorm:"foreignKey:UsuarioID" json:"cliente,omitempty"`
}

func (Usuario) TableName() string { return "usuarios" }
