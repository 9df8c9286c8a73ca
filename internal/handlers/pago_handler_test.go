package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func configurarDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("no se pudo abrir sqlite en memoria: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Cliente{}, &models.Moto{}, &models.Contrato{},
		&models.Pago{}, &models.Factura{}, &models.Alerta{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	config.DB = db
	config.RDB = nil
}

var secuenciaPago int

func crearPagoPendiente(t *testing.T) models.Pago {
	t.Helper()
	secuenciaPago++

	dni := fmt.Sprintf("%08d", 40000000+secuenciaPago)
	cliente := models.Cliente{Nombre: "Ana López", DNI: &dni}
	if err := config.DB.Create(&cliente).Error; err != nil {
		t.Fatalf("crear cliente: %v", err)
	}
	moto := models.Moto{Marca: "Yamaha", Modelo: "FZ25", Patente: fmt.Sprintf("CD%04d", secuenciaPago), Anio: 2022}
	if err := config.DB.Create(&moto).Error; err != nil {
		t.Fatalf("crear moto: %v", err)
	}
	contrato := models.Contrato{
		ClienteID:     cliente.ID,
		MotoID:        moto.ID,
		FechaInicio:   time.Now(),
		FechaFin:      time.Now().AddDate(0, 6, 0),
		DuracionMeses: 6,
		Estado:        models.ContratoPendiente,
	}
	if err := config.DB.Create(&contrato).Error; err != nil {
		t.Fatalf("crear contrato: %v", err)
	}
	pago := models.Pago{
		ContratoID: contrato.ID,
		Monto:      142.50,
		Estado:     models.PagoPendiente,
		Referencia: fmt.Sprintf("ref-%04d", secuenciaPago),
	}
	if err := config.DB.Create(&pago).Error; err != nil {
		t.Fatalf("crear pago: %v", err)
	}
	return pago
}

func postJSON(r *gin.Engine, ruta string, cuerpo interface{}, headers map[string]string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(cuerpo)
	req := httptest.NewRequest(http.MethodPost, ruta, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func putJSON(r *gin.Engine, ruta string, cuerpo interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(cuerpo)
	req := httptest.NewRequest(http.MethodPut, ruta, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConfirmarPagoActivaElContrato(t *testing.T) {
	configurarDB(t)
	pago := crearPagoPendiente(t)

	r := gin.New()
	r.POST("/api/pagos/confirmar", ConfirmarPagoHandler)

	w := postJSON(r, "/api/pagos/confirmar", gin.H{"pagoId": pago.ID, "metodo": "efectivo"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200: %s", w.Code, w.Body.String())
	}

	var actualizado models.Pago
	config.DB.First(&actualizado, pago.ID)
	if actualizado.Estado != models.PagoPagado {
		t.Errorf("estado del pago = %q, se esperaba pagado", actualizado.Estado)
	}
	if actualizado.PagadoAt == nil {
		t.Error("PagadoAt quedó en nil")
	}
	if actualizado.Metodo != "efectivo" {
		t.Errorf("método = %q, se esperaba efectivo", actualizado.Metodo)
	}

	var contrato models.Contrato
	config.DB.First(&contrato, pago.ContratoID)
	if contrato.Estado != models.ContratoActivo {
		t.Errorf("estado del contrato = %q, se esperaba activo", contrato.Estado)
	}
}

func TestConfirmarPagoYaPagadoResponde409(t *testing.T) {
	configurarDB(t)
	pago := crearPagoPendiente(t)

	r := gin.New()
	r.POST("/api/pagos/confirmar", ConfirmarPagoHandler)

	w := postJSON(r, "/api/pagos/confirmar", gin.H{"pagoId": pago.ID}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("primera confirmación: status = %d", w.Code)
	}

	w = postJSON(r, "/api/pagos/confirmar", gin.H{"pagoId": pago.ID}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("segunda confirmación: status = %d, se esperaba 409", w.Code)
	}
}

func TestConfirmarPagoInexistenteResponde404(t *testing.T) {
	configurarDB(t)

	r := gin.New()
	r.POST("/api/pagos/confirmar", ConfirmarPagoHandler)

	w := postJSON(r, "/api/pagos/confirmar", gin.H{"pagoId": 9999}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, se esperaba 404", w.Code)
	}
}

func TestWebhookMPConfirmaPorReferencia(t *testing.T) {
	configurarDB(t)
	config.MPWebhookSecret = ""
	pago := crearPagoPendiente(t)

	r := gin.New()
	r.POST("/api/mp/webhook", WebhookMPHandler)

	cuerpo := gin.H{"external_reference": pago.Referencia, "status": "approved"}
	w := postJSON(r, "/api/mp/webhook", cuerpo, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200: %s", w.Code, w.Body.String())
	}

	var actualizado models.Pago
	config.DB.First(&actualizado, pago.ID)
	if actualizado.Estado != models.PagoPagado {
		t.Errorf("estado del pago = %q, se esperaba pagado", actualizado.Estado)
	}
	if actualizado.Metodo != "mercadopago" {
		t.Errorf("método = %q, se esperaba mercadopago", actualizado.Metodo)
	}

	// El reintento de la pasarela sobre un pago ya confirmado no falla.
	w = postJSON(r, "/api/mp/webhook", cuerpo, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reintento: status = %d, se esperaba 200", w.Code)
	}
}

func TestWebhookMPIgnoraEstadosNoAprobados(t *testing.T) {
	configurarDB(t)
	config.MPWebhookSecret = ""
	pago := crearPagoPendiente(t)

	r := gin.New()
	r.POST("/api/mp/webhook", WebhookMPHandler)

	w := postJSON(r, "/api/mp/webhook", gin.H{"external_reference": pago.Referencia, "status": "pending"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200", w.Code)
	}

	var sinCambios models.Pago
	config.DB.First(&sinCambios, pago.ID)
	if sinCambios.Estado != models.PagoPendiente {
		t.Errorf("estado del pago = %q, se esperaba pendiente", sinCambios.Estado)
	}
}

func TestWebhookMPSecretoIncorrectoResponde401(t *testing.T) {
	configurarDB(t)
	config.MPWebhookSecret = "secreto"
	defer func() { config.MPWebhookSecret = "" }()

	r := gin.New()
	r.POST("/api/mp/webhook", WebhookMPHandler)

	w := postJSON(r, "/api/mp/webhook", gin.H{"status": "approved"}, map[string]string{"x-webhook-secret": "otro"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, se esperaba 401", w.Code)
	}

	w = postJSON(r, "/api/mp/webhook", gin.H{"status": "approved"}, map[string]string{"x-webhook-secret": "secreto"})
	if w.Code != http.StatusOK {
		t.Fatalf("con secreto correcto: status = %d, se esperaba 200", w.Code)
	}
}
