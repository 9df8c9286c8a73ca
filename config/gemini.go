package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var GeminiClient *genai.GenerativeModel

// InitGemini inicializa el cliente del asistente. Es opcional: si no hay
// API key el endpoint /api/asistente responde 503.
func InitGemini() error {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		slog.Warn("GEMINI_API_KEY no está definida, el asistente queda deshabilitado.")
		return nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return fmt.Errorf("no se pudo crear el cliente de Gemini: %v", err)
	}
	GeminiClient = client.GenerativeModel("gemini-1.5-flash")
	slog.Info("Cliente de Gemini inicializado")

	return nil
}
