package handlers

import (
	"log/slog"
	"net/http"

	"alquiler-motos/config"
	"alquiler-motos/internal/verifik"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ValidarDNIRequest struct {
	DNI       string `json:"dni" binding:"required"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	CheckOnly bool   `json:"checkOnly"`
}

// ValidarDNIHandler corre el KYC sobre un DNI, guarda el registro de
// auditoría y opcionalmente crea el cliente. El riesgo HIGH rechaza
// siempre; es la única regla dura sobre el resultado del verificador.
func ValidarDNIHandler(c *gin.Context) {
	var req ValidarDNIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DNI es requerido"})
		return
	}

	dni := verifik.LimpiarDNI(req.DNI)
	if !verifik.FormatoValido(req.DNI) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DNI debe tener 8 dígitos"})
		return
	}

	var existente models.Cliente
	if err := config.DB.Where("dni = ?", dni).First(&existente).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"valid":    false,
			"error":    "DNI ya registrado en el sistema",
			"existing": existente,
		})
		return
	}

	verificador := verifik.NewClient(config.VerifikAPIKey, config.VerifikSecret, config.VerifikEnabled)
	kyc := verificador.KYCCompleto(dni, req.Nombre)

	registro := models.Verificacion{
		DNI:         dni,
		Nombre:      req.Nombre,
		Verificado:  kyc.Verificado,
		NivelRiesgo: kyc.NivelRiesgo,
	}
	if kyc.Detalle != nil {
		registro.Payload = datatypes.JSON(kyc.Detalle)
	}
	if err := config.DB.Create(&registro).Error; err != nil {
		slog.Error("No se pudo guardar la verificación", "dni", dni, "error", err)
	}

	if !kyc.Verificado {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid":     false,
			"error":     "No se pudo verificar el DNI",
			"riskLevel": kyc.NivelRiesgo,
		})
		return
	}

	if kyc.NivelRiesgo == models.RiesgoAlto {
		c.JSON(http.StatusForbidden, gin.H{
			"valid":     false,
			"error":     "DNI reporta riesgo alto. Contactar a un administrador.",
			"riskLevel": kyc.NivelRiesgo,
		})
		return
	}

	if req.CheckOnly {
		c.JSON(http.StatusOK, gin.H{
			"valid":     true,
			"verified":  true,
			"riskLevel": kyc.NivelRiesgo,
			"message":   "DNI válido y verificado",
		})
		return
	}

	if req.Nombre == "" {
		c.JSON(http.StatusOK, gin.H{
			"valid":     true,
			"verified":  true,
			"riskLevel": kyc.NivelRiesgo,
			"message":   "DNI válido y verificado. Falta el nombre para crear el cliente.",
		})
		return
	}

	cliente := models.Cliente{
		DNI:    &dni,
		Nombre: req.Nombre,
		Email:  req.Email,
	}
	if err := config.DB.Create(&cliente).Error; err != nil {
		slog.Error("No se pudo crear el cliente verificado", "dni", dni, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el cliente"})
		return
	}

	clienteID := cliente.ID
	config.DB.Model(&registro).Update("cliente_id", &clienteID)

	c.JSON(http.StatusCreated, gin.H{
		"valid":     true,
		"verified":  true,
		"riskLevel": kyc.NivelRiesgo,
		"cliente":   cliente,
		"message":   "Cliente creado exitosamente",
	})
}

// ListVerificacionesHandler lista el historial de validaciones.
func ListVerificacionesHandler(c *gin.Context) {
	query := config.DB.Model(&models.Verificacion{}).Order("created_at DESC")

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo contar las verificaciones"})
		return
	}

	var verificaciones []models.Verificacion
	if err := query.Scopes(Paginate(c)).Find(&verificaciones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener el historial"})
		return
	}

	if verificaciones == nil {
		verificaciones = make([]models.Verificacion, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, verificaciones, totalRows))
}
