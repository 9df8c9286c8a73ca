package models

import "fmt"

// Rol es una enumeración cerrada: el gate de autorización compara contra
// estos valores y nada más.
type Rol string

const (
	RolAdmin    Rol = "admin"
	RolOperador Rol = "operador"
	RolAuditor  Rol = "auditor"
	RolCliente  Rol = "cliente"
)

// ParseRol valida un rol recibido por API.
func ParseRol(s string) (Rol, error) {
	switch Rol(s) {
	case RolAdmin, RolOperador, RolAuditor, RolCliente:
		return Rol(s), nil
	}
	return "", fmt.Errorf("rol desconocido: %q", s)
}

func (r Rol) EstaEn(roles []Rol) bool {
	for _, candidato := range roles {
		if r == candidato {
			return true
		}
	}
	return false
}
