package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func configurarEntorno(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("no se pudo abrir sqlite en memoria: %v", err)
	}
	if err := db.AutoMigrate(&models.Usuario{}, &models.Cliente{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	config.DB = db
	config.RDB = nil
	config.JwtKey = []byte("clave-de-prueba")
	config.ServiceAPIKey = "llave-servicio"
}

func crearUsuario(t *testing.T, rol models.Rol, activo bool) models.Usuario {
	t.Helper()
	usuario := models.Usuario{
		Email:    string(rol) + "@test.local",
		Nombre:   "Usuario de prueba",
		Password: "hash",
		Rol:      rol,
		Activo:   activo,
	}
	if err := config.DB.Create(&usuario).Error; err != nil {
		t.Fatalf("crear usuario: %v", err)
	}
	return usuario
}

func tokenPara(t *testing.T, usuarioID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"usuario_id": float64(usuarioID),
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	firmado, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtKey)
	if err != nil {
		t.Fatalf("firmar token: %v", err)
	}
	return firmado
}

func routerDePrueba(roles ...models.Rol) *gin.Engine {
	r := gin.New()
	r.GET("/protegida", AuthMiddleware(), RequireRol(roles...), func(c *gin.Context) {
		rol, _ := c.Get("rol")
		c.JSON(http.StatusOK, gin.H{"rol": rol})
	})
	return r
}

func hacerRequest(r *gin.Engine, ajustar func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if ajustar != nil {
		ajustar(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthSinCredencialResponde401(t *testing.T) {
	configurarEntorno(t)
	r := routerDePrueba(models.RolAdmin)

	w := hacerRequest(r, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, se esperaba 401", w.Code)
	}
}

func TestAuthTokenInvalidoResponde401(t *testing.T) {
	configurarEntorno(t)
	r := routerDePrueba(models.RolAdmin)

	w := hacerRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer token-roto")
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, se esperaba 401", w.Code)
	}
}

func TestAuthTokenValidoConRolSuficiente(t *testing.T) {
	configurarEntorno(t)
	usuario := crearUsuario(t, models.RolAdmin, true)
	r := routerDePrueba(models.RolAdmin)

	w := hacerRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tokenPara(t, usuario.ID))
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200: %s", w.Code, w.Body.String())
	}
}

func TestAuthTokenPorCookie(t *testing.T) {
	configurarEntorno(t)
	usuario := crearUsuario(t, models.RolOperador, true)
	r := routerDePrueba(models.RolOperador)

	w := hacerRequest(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: tokenPara(t, usuario.ID)})
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200: %s", w.Code, w.Body.String())
	}
}

func TestAuthRolInsuficienteResponde403(t *testing.T) {
	configurarEntorno(t)
	usuario := crearUsuario(t, models.RolOperador, true)
	r := routerDePrueba(models.RolAdmin)

	w := hacerRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tokenPara(t, usuario.ID))
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, se esperaba 403", w.Code)
	}
}

func TestAuthUsuarioInactivoResponde401(t *testing.T) {
	configurarEntorno(t)
	usuario := crearUsuario(t, models.RolAdmin, false)
	r := routerDePrueba(models.RolAdmin)

	w := hacerRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tokenPara(t, usuario.ID))
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, se esperaba 401", w.Code)
	}
}

func TestLlaveDeServicioOtorgaSoloAuditor(t *testing.T) {
	configurarEntorno(t)

	// En una ruta de lectura que admite auditor, la llave entra.
	lectura := routerDePrueba(models.RolAdmin, models.RolOperador, models.RolAuditor)
	w := hacerRequest(lectura, func(req *http.Request) {
		req.Header.Set("x-api-key", "llave-servicio")
	})
	if w.Code != http.StatusOK {
		t.Fatalf("lectura con llave de servicio: status = %d, se esperaba 200", w.Code)
	}

	// En una ruta de escritura (sin auditor) la misma llave recibe 403.
	escritura := routerDePrueba(models.RolAdmin, models.RolOperador)
	w = hacerRequest(escritura, func(req *http.Request) {
		req.Header.Set("x-api-key", "llave-servicio")
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("escritura con llave de servicio: status = %d, se esperaba 403", w.Code)
	}
}

func TestLlaveDeServicioComoBearer(t *testing.T) {
	configurarEntorno(t)
	r := routerDePrueba(models.RolAuditor)

	w := hacerRequest(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer llave-servicio")
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, se esperaba 200", w.Code)
	}
}

func TestLlaveDeServicioIncorrectaResponde401(t *testing.T) {
	configurarEntorno(t)
	r := routerDePrueba(models.RolAuditor)

	w := hacerRequest(r, func(req *http.Request) {
		req.Header.Set("x-api-key", "otra-llave")
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, se esperaba 401", w.Code)
	}
}
