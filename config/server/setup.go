package server

import (
	"UserAccountBackend/config"
	"UserAccountBackend/internal"
	"context"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"log"
	"net"
	"net/http"
	"os"
)

// LoadConfig загружает .env (если есть) и yaml-конфигурацию.
// Путь к yaml задается переменной CONFIG_PATH, по умолчанию config.yaml.
func LoadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env не найден, используются переменные окружения")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	return config.LoadConfig(configPath)
}

func SetupDatabase(ctx context.Context, cfg *config.DatabaseConfig) (*internal.Database, error) {
	database, err := internal.NewDatabaseConnection(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения: %w", err)
	}

	if err := database.RunMigrations(ctx); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

func SetupServer(cfg *config.ServerConfig, corsCfg *config.CORSConfig) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		Handler: corsMiddleware.Handler(router),
	}

	return server, router
}
