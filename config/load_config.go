package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга .yaml файла: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides позволяет переопределить секреты через переменные окружения,
// чтобы не хранить их в .yaml файле.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_CONNECTION_URL"); v != "" {
		cfg.Database.ConnectionString = v
	}
	if v := os.Getenv("JWT_ACCESS_SECRET_KEY"); v != "" {
		cfg.JWT.AccessSecretKey = v
	}
	if v := os.Getenv("JWT_REFRESH_SECRET_KEY"); v != "" {
		cfg.JWT.RefreshSecretKey = v
	}
	if v := os.Getenv("MEDIA_ACCESS_KEY"); v != "" {
		cfg.Media.AccessKey = v
	}
	if v := os.Getenv("MEDIA_SECRET_KEY"); v != "" {
		cfg.Media.SecretKey = v
	}
}
