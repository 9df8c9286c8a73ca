package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("La variable de entorno REDIS_ADDR no está definida, el cacheo queda deshabilitado.")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("No se pudo conectar a Redis", "error", err)
		RDB = nil // Sin cliente la aplicación sigue funcionando, solo sin caché.
		return
	}

	slog.Info("Conexión exitosa a Redis")
}
