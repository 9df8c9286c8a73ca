package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"alquiler-motos/config"
	"alquiler-motos/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// DatosUsuario es lo que viaja por el contexto una vez autenticado.
type DatosUsuario struct {
	UsuarioID uint       `json:"usuario_id"`
	Email     string     `json:"email"`
	Rol       models.Rol `json:"rol"`
	// EsServicio marca las identidades sintéticas creadas por la API key.
	EsServicio bool `json:"es_servicio"`
}

const cacheUsuarioTTL = 10 * time.Minute

// AuthMiddleware resuelve la identidad del request. Dos caminos de entrada:
// la API key de servicio (solo lectura, rol auditor) o un JWT de sesión.
// Sin credencial válida responde 401 UNAUTHORIZED.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Camino 1: API key estática de servicio. Otorga únicamente el
		// rol auditor, sin importar qué rol pida la ruta.
		if esLlaveDeServicio(c) {
			establecerContexto(c, &DatosUsuario{
				Rol:        models.RolAuditor,
				EsServicio: true,
			})
			return
		}

		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				rechazarNoAutorizado(c)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				rechazarNoAutorizado(c)
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})

		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			rechazarNoAutorizado(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			rechazarNoAutorizado(c)
			return
		}

		usuarioIDFloat, ok := claims["usuario_id"].(float64)
		if !ok {
			rechazarNoAutorizado(c)
			return
		}
		usuarioID := uint(usuarioIDFloat)

		cacheKey := fmt.Sprintf("usuario:%d:datos", usuarioID)
		if config.RDB != nil {
			cached, err := config.RDB.Get(config.Ctx, cacheKey).Result()
			if err == nil {
				var datos DatosUsuario
				if json.Unmarshal([]byte(cached), &datos) == nil {
					establecerContexto(c, &datos)
					return
				}
				slog.Warn("No se pudo deserializar el usuario cacheado", "usuario_id", usuarioID)
			} else if err != redis.Nil {
				slog.Error("Falló el GET de Redis", "error", err, "usuario_id", usuarioID)
			}
		}

		var usuario models.Usuario
		if err := config.DB.First(&usuario, usuarioID).Error; err != nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			rechazarNoAutorizado(c)
			return
		}

		if !usuario.Activo {
			rechazarNoAutorizado(c)
			return
		}

		datos := DatosUsuario{
			UsuarioID: usuario.ID,
			Email:     usuario.Email,
			Rol:       usuario.Rol,
		}

		if config.RDB != nil {
			if jsonData, err := json.Marshal(datos); err == nil {
				if err := config.RDB.Set(config.Ctx, cacheKey, jsonData, cacheUsuarioTTL).Err(); err != nil {
					slog.Error("No se pudo cachear el usuario", "error", err, "usuario_id", usuarioID)
				}
			}
		}

		establecerContexto(c, &datos)
	}
}

// RequireRol exige que el rol del contexto esté en el conjunto pedido.
// Responde 403 FORBIDDEN cuando hay sesión pero el rol no alcanza.
func RequireRol(roles ...models.Rol) gin.HandlerFunc {
	return func(c *gin.Context) {
		valor, exists := c.Get("rol")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED"})
			c.Abort()
			return
		}

		rol, ok := valor.(models.Rol)
		if !ok || !rol.EstaEn(roles) {
			c.JSON(http.StatusForbidden, gin.H{"error": "FORBIDDEN"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// InvalidarCacheUsuario borra la entrada cacheada después de un cambio de
// rol o de baja. Sin Redis no hay nada que invalidar.
func InvalidarCacheUsuario(usuarioID uint) {
	if config.RDB == nil {
		return
	}
	cacheKey := fmt.Sprintf("usuario:%d:datos", usuarioID)
	if err := config.RDB.Del(config.Ctx, cacheKey).Err(); err != nil {
		slog.Error("No se pudo invalidar el caché de usuario", "error", err, "usuario_id", usuarioID)
	}
}

func esLlaveDeServicio(c *gin.Context) bool {
	if config.ServiceAPIKey == "" {
		return false
	}

	provista := c.GetHeader("x-api-key")
	if provista == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			provista = authHeader[7:]
		}
	}

	return strings.TrimSpace(provista) == strings.TrimSpace(config.ServiceAPIKey)
}

func establecerContexto(c *gin.Context, datos *DatosUsuario) {
	c.Set("usuario_id", datos.UsuarioID)
	c.Set("email", datos.Email)
	c.Set("rol", datos.Rol)
	c.Set("es_servicio", datos.EsServicio)
	c.Next()
}

func rechazarNoAutorizado(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED"})
	c.Abort()
}
