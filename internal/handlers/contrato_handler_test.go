package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
)

func configurarDBContratos(t *testing.T) (models.Cliente, models.Moto) {
	t.Helper()
	configurarDB(t)
	if err := config.DB.AutoMigrate(&models.PricingConfig{}); err != nil {
		t.Fatalf("automigrate pricing: %v", err)
	}

	secuenciaPago++
	dni := fmt.Sprintf("%08d", 50000000+secuenciaPago)
	cliente := models.Cliente{Nombre: "Carlos Ruiz", DNI: &dni}
	if err := config.DB.Create(&cliente).Error; err != nil {
		t.Fatalf("crear cliente: %v", err)
	}
	moto := models.Moto{Marca: "Honda", Modelo: "XR150", Patente: fmt.Sprintf("EF%04d", secuenciaPago), Anio: 2023}
	if err := config.DB.Create(&moto).Error; err != nil {
		t.Fatalf("crear moto: %v", err)
	}
	return cliente, moto
}

func TestCrearContratoCalculaPrecios(t *testing.T) {
	cliente, moto := configurarDBContratos(t)

	r := gin.New()
	r.POST("/api/contratos", CreateContratoHandler)

	w := postJSON(r, "/api/contratos", gin.H{
		"clienteId":     cliente.ID,
		"motoId":        moto.ID,
		"fechaInicio":   "2026-09-01",
		"duracionMeses": 6,
		"tipoPago":      "mensual",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, se esperaba 201: %s", w.Code, w.Body.String())
	}

	var contrato models.Contrato
	if err := config.DB.First(&contrato).Error; err != nil {
		t.Fatalf("buscar contrato: %v", err)
	}
	// Defaults: base 150, descuento 5% a 6 meses.
	if contrato.PrecioMensual != 142.50 {
		t.Errorf("precio mensual = %v, se esperaba 142.50", contrato.PrecioMensual)
	}
	if contrato.PrecioTotal != 855.00 {
		t.Errorf("precio total = %v, se esperaba 855.00", contrato.PrecioTotal)
	}
	if contrato.Estado != models.ContratoPendiente {
		t.Errorf("estado = %q, se esperaba pendiente", contrato.Estado)
	}
}

func TestCrearContratoSuperpuestoResponde409(t *testing.T) {
	cliente, moto := configurarDBContratos(t)

	r := gin.New()
	r.POST("/api/contratos", CreateContratoHandler)

	cuerpo := gin.H{
		"clienteId":     cliente.ID,
		"motoId":        moto.ID,
		"fechaInicio":   "2026-09-01",
		"duracionMeses": 6,
		"tipoPago":      "mensual",
	}
	if w := postJSON(r, "/api/contratos", cuerpo, nil); w.Code != http.StatusCreated {
		t.Fatalf("primer contrato: status = %d: %s", w.Code, w.Body.String())
	}

	// Mismo rango sobre la misma moto.
	w := postJSON(r, "/api/contratos", cuerpo, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("contrato superpuesto: status = %d, se esperaba 409: %s", w.Code, w.Body.String())
	}

	// Rango solapado parcialmente también rechaza.
	cuerpo["fechaInicio"] = "2027-01-01"
	cuerpo["duracionMeses"] = 3
	w = postJSON(r, "/api/contratos", cuerpo, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("solapamiento parcial: status = %d, se esperaba 409", w.Code)
	}

	// Un rango posterior al fin del contrato vigente sí entra.
	cuerpo["fechaInicio"] = "2027-04-01"
	w = postJSON(r, "/api/contratos", cuerpo, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("rango libre: status = %d, se esperaba 201: %s", w.Code, w.Body.String())
	}
}

func TestCrearContratoActivoMarcaMotoAlquilada(t *testing.T) {
	cliente, moto := configurarDBContratos(t)

	r := gin.New()
	r.POST("/api/contratos", CreateContratoHandler)

	w := postJSON(r, "/api/contratos", gin.H{
		"clienteId":     cliente.ID,
		"motoId":        moto.ID,
		"fechaInicio":   "2026-09-01",
		"duracionMeses": 3,
		"tipoPago":      "semanal",
		"estado":        models.ContratoActivo,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, se esperaba 201: %s", w.Code, w.Body.String())
	}

	var actualizada models.Moto
	config.DB.First(&actualizada, moto.ID)
	if actualizada.Estado != models.MotoAlquilada {
		t.Errorf("estado de la moto = %q, se esperaba alquilada", actualizada.Estado)
	}
}

func TestCrearContratoMotoEnMantenimientoResponde409(t *testing.T) {
	cliente, moto := configurarDBContratos(t)
	config.DB.Model(&moto).Update("estado", models.MotoMantenimiento)

	r := gin.New()
	r.POST("/api/contratos", CreateContratoHandler)

	w := postJSON(r, "/api/contratos", gin.H{
		"clienteId":     cliente.ID,
		"motoId":        moto.ID,
		"fechaInicio":   "2026-09-01",
		"duracionMeses": 3,
		"tipoPago":      "mensual",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, se esperaba 409: %s", w.Code, w.Body.String())
	}
}

func TestFinalizarContratoLiberaLaMoto(t *testing.T) {
	cliente, moto := configurarDBContratos(t)

	r := gin.New()
	r.POST("/api/contratos", CreateContratoHandler)
	r.PUT("/api/contratos/:id", UpdateContratoHandler)

	w := postJSON(r, "/api/contratos", gin.H{
		"clienteId":     cliente.ID,
		"motoId":        moto.ID,
		"fechaInicio":   "2026-09-01",
		"duracionMeses": 3,
		"tipoPago":      "mensual",
		"estado":        models.ContratoActivo,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("crear: status = %d: %s", w.Code, w.Body.String())
	}

	var contrato models.Contrato
	config.DB.First(&contrato)

	w = putJSON(r, fmt.Sprintf("/api/contratos/%d", contrato.ID), gin.H{"estado": models.ContratoFinalizado})
	if w.Code != http.StatusOK {
		t.Fatalf("finalizar: status = %d: %s", w.Code, w.Body.String())
	}

	var liberada models.Moto
	config.DB.First(&liberada, moto.ID)
	if liberada.Estado != models.MotoDisponible {
		t.Errorf("estado de la moto = %q, se esperaba disponible", liberada.Estado)
	}
}
