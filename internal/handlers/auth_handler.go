package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const duracionToken = 24 * time.Hour

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginHandler valida credenciales y emite el JWT en cookie y en el body.
func LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email y contraseña son requeridos"})
		return
	}

	var usuario models.Usuario
	if err := config.DB.Where("email = ?", req.Email).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
			return
		}
		slog.Error("Error buscando usuario en login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	if !usuario.Activo {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "La cuenta está deshabilitada"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}

	tokenStr, err := GenerarToken(usuario.ID, usuario.Rol)
	if err != nil {
		slog.Error("No se pudo firmar el token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
		return
	}

	c.SetCookie("auth_token", tokenStr, int(duracionToken.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": tokenStr,
		"usuario": gin.H{
			"id":     usuario.ID,
			"email":  usuario.Email,
			"nombre": usuario.Nombre,
			"rol":    usuario.Rol,
		},
	})
}

// RegisterHandler crea la cuenta pública: usuario con rol cliente y su
// perfil de cliente vinculado, en una sola transacción.
func RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todos los campos son requeridos"})
		return
	}

	var existentes int64
	config.DB.Model(&models.Usuario{}).Where("email = ?", req.Email).Count(&existentes)
	if existentes > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Este email ya está registrado"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("No se pudo hashear la contraseña", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear la cuenta"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		usuario := models.Usuario{
			Email:     req.Email,
			Nombre:    req.Nombre,
			Password:  string(hash),
			Rol:       models.RolCliente,
			Proveedor: "credenciales",
			Activo:    true,
		}
		if err := tx.Create(&usuario).Error; err != nil {
			return err
		}

		usuarioID := usuario.ID
		return tx.Create(&models.Cliente{
			Nombre:    req.Nombre,
			Email:     req.Email,
			UsuarioID: &usuarioID,
		}).Error
	})

	if err != nil {
		slog.Error("No se pudo registrar el usuario", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear la cuenta"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Cuenta creada exitosamente"})
}

func LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GenerarToken firma el JWT de sesión con el rol embebido.
func GenerarToken(usuarioID uint, rol models.Rol) (string, error) {
	claims := jwt.MapClaims{
		"usuario_id": usuarioID,
		"rol":        string(rol),
		"exp":        time.Now().Add(duracionToken).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JwtKey)
}
