package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"alquiler-motos/config"
	"alquiler-motos/internal/middleware"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UsuarioInput struct {
	Email    string `json:"email" binding:"required,email"`
	Nombre   string `json:"nombre" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Rol      string `json:"rol" binding:"required"`
}

type UsuarioPatchInput struct {
	Rol    *string `json:"rol"`
	Activo *bool   `json:"activo"`
}

// usuarioResponse evita exponer el hash de contraseña en las listas.
type usuarioResponse struct {
	ID     uint       `json:"id"`
	Email  string     `json:"email"`
	Nombre string     `json:"nombre"`
	Rol    models.Rol `json:"rol"`
	Activo bool       `json:"activo"`
}

func ListUsuariosHandler(c *gin.Context) {
	var usuarios []usuarioResponse
	if err := config.DB.Model(&models.Usuario{}).
		Order("created_at DESC").Scan(&usuarios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de usuarios"})
		return
	}

	if usuarios == nil {
		usuarios = make([]usuarioResponse, 0)
	}
	c.JSON(http.StatusOK, usuarios)
}

func CreateUsuarioHandler(c *gin.Context) {
	var input UsuarioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos incompletos"})
		return
	}

	rol, err := models.ParseRol(input.Rol)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existentes int64
	config.DB.Model(&models.Usuario{}).Where("email = ?", input.Email).Count(&existentes)
	if existentes > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Este email ya está registrado"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("No se pudo hashear la contraseña", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	usuario := models.Usuario{
		Email:     input.Email,
		Nombre:    input.Nombre,
		Password:  string(hash),
		Rol:       rol,
		Proveedor: "credenciales",
		Activo:    true,
	}

	if err := config.DB.Create(&usuario).Error; err != nil {
		slog.Error("No se pudo crear el usuario", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el usuario"})
		return
	}

	c.JSON(http.StatusCreated, usuarioResponse{
		ID: usuario.ID, Email: usuario.Email, Nombre: usuario.Nombre,
		Rol: usuario.Rol, Activo: usuario.Activo,
	})
}

// PatchUsuarioHandler cambia rol o estado de la cuenta e invalida el
// usuario cacheado para que el cambio rija de inmediato.
func PatchUsuarioHandler(c *gin.Context) {
	var usuario models.Usuario
	if err := config.DB.First(&usuario, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando el usuario"})
		return
	}

	var input UsuarioPatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	if input.Rol != nil {
		rol, err := models.ParseRol(*input.Rol)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		usuario.Rol = rol
	}
	if input.Activo != nil {
		usuario.Activo = *input.Activo
	}

	if err := config.DB.Save(&usuario).Error; err != nil {
		slog.Error("No se pudo actualizar el usuario", "usuario_id", usuario.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el usuario"})
		return
	}

	middleware.InvalidarCacheUsuario(usuario.ID)

	c.JSON(http.StatusOK, usuarioResponse{
		ID: usuario.ID, Email: usuario.Email, Nombre: usuario.Nombre,
		Rol: usuario.Rol, Activo: usuario.Activo,
	})
}
