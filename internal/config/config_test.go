package config

import (
	"reflect"
	"testing"
)

func TestLoad_CORSOrigins(t *testing.T) {
	t.Run("defaults to localhost origins", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned unexpected error: %v", err)
		}

		want := []string{"http://localhost:3000", "http://localhost"}
		if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
			t.Errorf("Expected default origins %v, got %v", want, cfg.CORS.AllowedOrigins)
		}
	})

	t.Run("reads comma-separated origins from the environment", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://tracker.example.com, http://localhost:8080")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned unexpected error: %v", err)
		}

		want := []string{"https://tracker.example.com", "http://localhost:8080"}
		if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
			t.Errorf("Expected origins %v, got %v", want, cfg.CORS.AllowedOrigins)
		}
	})

	t.Run("blank entries fall back to defaults", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned unexpected error: %v", err)
		}

		if len(cfg.CORS.AllowedOrigins) == 0 {
			t.Error("Expected fallback origins, got none")
		}
	})
}
