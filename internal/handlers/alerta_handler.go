package handlers

import (
	"errors"
	"net/http"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListAlertasHandler(c *gin.Context) {
	var alertas []models.Alerta

	query := config.DB.Model(&models.Alerta{}).Order("created_at DESC")
	if c.Query("leida") == "false" {
		query = query.Where("leida = ?", false)
	}
	if tipo := c.Query("tipo"); tipo != "" {
		query = query.Where("tipo = ?", tipo)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo contar las alertas"})
		return
	}

	if err := query.Scopes(Paginate(c)).Find(&alertas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de alertas"})
		return
	}

	if alertas == nil {
		alertas = make([]models.Alerta, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, alertas, totalRows))
}

// CountAlertasHandler devuelve cuántas alertas siguen sin leer. Lo
// consume el widget de la barra superior por polling.
func CountAlertasHandler(c *gin.Context) {
	var count int64
	if err := config.DB.Model(&models.Alerta{}).
		Where("leida = ?", false).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo contar las alertas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func LeerAlertaHandler(c *gin.Context) {
	var alerta models.Alerta
	if err := config.DB.First(&alerta, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alerta no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error buscando la alerta"})
		return
	}

	if err := config.DB.Model(&alerta).Update("leida", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo marcar la alerta"})
		return
	}

	alerta.Leida = true
	c.JSON(http.StatusOK, alerta)
}
