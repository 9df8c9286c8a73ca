package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MotoInput struct {
	Marca   string `json:"marca" binding:"required"`
	Modelo  string `json:"modelo" binding:"required"`
	Patente string `json:"patente" binding:"required"`
	Anio    int    `json:"anio" binding:"required"`
	Estado  string `json:"estado"`
}

func estadoMotoValido(estado string) bool {
	switch estado {
	case models.MotoDisponible, models.MotoAlquilada, models.MotoMantenimiento:
		return true
	}
	return false
}

func ListMotosHandler(c *gin.Context) {
	var motos []models.Moto

	query := config.DB.Model(&models.Moto{}).Order("created_at DESC")
	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	if err := query.Find(&motos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de motos"})
		return
	}

	if motos == nil {
		motos = make([]models.Moto, 0)
	}
	c.JSON(http.StatusOK, motos)
}

func GetMotoHandler(c *gin.Context) {
	var moto models.Moto
	if err := config.DB.Preload("Contratos").First(&moto, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Moto no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando la moto"})
		return
	}
	c.JSON(http.StatusOK, moto)
}

func CreateMotoHandler(c *gin.Context) {
	var input MotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Marca, modelo, patente y año son requeridos"})
		return
	}

	if input.Estado == "" {
		input.Estado = models.MotoDisponible
	}
	if !estadoMotoValido(input.Estado) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado de moto inválido"})
		return
	}

	var existentes int64
	config.DB.Model(&models.Moto{}).Where("patente = ?", input.Patente).Count(&existentes)
	if existentes > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "La patente ya existe"})
		return
	}

	moto := models.Moto{
		Marca:   input.Marca,
		Modelo:  input.Modelo,
		Patente: input.Patente,
		Anio:    input.Anio,
		Estado:  input.Estado,
	}

	if err := config.DB.Create(&moto).Error; err != nil {
		slog.Error("No se pudo crear la moto", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la moto"})
		return
	}

	c.JSON(http.StatusCreated, moto)
}

func UpdateMotoHandler(c *gin.Context) {
	var moto models.Moto
	if err := config.DB.First(&moto, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Moto no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando la moto"})
		return
	}

	var input MotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	if input.Estado != "" && !estadoMotoValido(input.Estado) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado de moto inválido"})
		return
	}

	var duplicadas int64
	config.DB.Model(&models.Moto{}).
		Where("patente = ? AND id <> ?", input.Patente, moto.ID).Count(&duplicadas)
	if duplicadas > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "La patente ya existe"})
		return
	}

	moto.Marca = input.Marca
	moto.Modelo = input.Modelo
	moto.Patente = input.Patente
	moto.Anio = input.Anio
	if input.Estado != "" {
		moto.Estado = input.Estado
	}

	if err := config.DB.Save(&moto).Error; err != nil {
		slog.Error("No se pudo actualizar la moto", "moto_id", moto.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la moto"})
		return
	}

	c.JSON(http.StatusOK, moto)
}

func DeleteMotoHandler(c *gin.Context) {
	resultado := config.DB.Delete(&models.Moto{}, c.Param("id"))
	if resultado.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la moto"})
		return
	}
	if resultado.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Moto no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListMotosPublicHandler es el catálogo sin autenticación: solo motos y
// su disponibilidad, sin datos de contratos ni clientes.
func ListMotosPublicHandler(c *gin.Context) {
	type motoPublica struct {
		ID      uint   `json:"id"`
		Marca   string `json:"marca"`
		Modelo  string `json:"modelo"`
		Patente string `json:"patente"`
		Anio    int    `json:"anio"`
		Estado  string `json:"estado"`
	}

	var motos []motoPublica
	if err := config.DB.Model(&models.Moto{}).
		Order("created_at DESC").Scan(&motos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de motos"})
		return
	}

	if motos == nil {
		motos = make([]motoPublica, 0)
	}
	c.JSON(http.StatusOK, motos)
}
