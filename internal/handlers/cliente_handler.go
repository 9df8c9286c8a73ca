package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClienteInput struct {
	Nombre   string `json:"nombre" binding:"required"`
	DNI      string `json:"dni" binding:"required"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

func ListClientesHandler(c *gin.Context) {
	var clientes []models.Cliente

	query := config.DB.Model(&models.Cliente{}).Order("created_at DESC")

	if search := c.Query("search"); search != "" {
		patron := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(nombre) LIKE ? OR dni LIKE ?", patron, patron)
	}

	if c.Query("all") == "true" {
		if err := query.Find(&clientes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de clientes"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": clientes})
		return
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo contar los clientes"})
		return
	}

	if err := query.Scopes(Paginate(c)).Find(&clientes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de clientes"})
		return
	}

	if clientes == nil {
		clientes = make([]models.Cliente, 0)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, clientes, totalRows))
}

func GetClienteHandler(c *gin.Context) {
	var cliente models.Cliente
	if err := config.DB.Preload("Contratos").First(&cliente, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando el cliente"})
		return
	}
	c.JSON(http.StatusOK, cliente)
}

func CreateClienteHandler(c *gin.Context) {
	var input ClienteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre y DNI son requeridos"})
		return
	}

	var existentes int64
	config.DB.Model(&models.Cliente{}).Where("dni = ?", input.DNI).Count(&existentes)
	if existentes > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "El DNI ya existe"})
		return
	}

	cliente := models.Cliente{
		Nombre:   input.Nombre,
		DNI:      &input.DNI,
		Telefono: input.Telefono,
		Email:    input.Email,
	}

	if err := config.DB.Create(&cliente).Error; err != nil {
		slog.Error("No se pudo crear el cliente", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el cliente"})
		return
	}

	c.JSON(http.StatusCreated, cliente)
}

func UpdateClienteHandler(c *gin.Context) {
	var cliente models.Cliente
	if err := config.DB.First(&cliente, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando el cliente"})
		return
	}

	var input ClienteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	var duplicados int64
	config.DB.Model(&models.Cliente{}).
		Where("dni = ? AND id <> ?", input.DNI, cliente.ID).Count(&duplicados)
	if duplicados > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "El DNI ya existe"})
		return
	}

	cliente.Nombre = input.Nombre
	cliente.DNI = &input.DNI
	cliente.Telefono = input.Telefono
	cliente.Email = input.Email

	if err := config.DB.Save(&cliente).Error; err != nil {
		slog.Error("No se pudo actualizar el cliente", "cliente_id", cliente.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el cliente"})
		return
	}

	c.JSON(http.StatusOK, cliente)
}

func DeleteClienteHandler(c *gin.Context) {
	resultado := config.DB.Delete(&models.Cliente{}, c.Param("id"))
	if resultado.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el cliente"})
		return
	}
	if resultado.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
