package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Errores de negocio que las transacciones devuelven para que el handler
// los traduzca al código HTTP que corresponde.
type errNoEncontrado struct{ mensaje string }
type errConflicto struct{ mensaje string }
type errValidacion struct{ mensaje string }

func (e errNoEncontrado) Error() string { return e.mensaje }
func (e errConflicto) Error() string    { return e.mensaje }
func (e errValidacion) Error() string   { return e.mensaje }

// responderErrorDeNegocio mapea el error al status: 404, 409 o 400 para
// los tipificados; todo lo demás se registra y sale como 500 genérico.
func responderErrorDeNegocio(c *gin.Context, err error, mensajeGenerico string) {
	var noEncontrado errNoEncontrado
	var conflicto errConflicto
	var validacion errValidacion

	switch {
	case errors.As(err, &noEncontrado):
		c.JSON(http.StatusNotFound, gin.H{"error": noEncontrado.mensaje})
	case errors.As(err, &conflicto):
		c.JSON(http.StatusConflict, gin.H{"error": conflicto.mensaje})
	case errors.As(err, &validacion):
		c.JSON(http.StatusBadRequest, gin.H{"error": validacion.mensaje})
	default:
		slog.Error(mensajeGenerico, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": mensajeGenerico})
	}
}
