package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Media    MediaConfig    `yaml:"media"`
	CORS     CORSConfig     `yaml:"cors"`
	Webhook  WebhookConfig  `yaml:"webhook"`
}

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	BasePath string `yaml:"base_path"`
	// Каталог для временных файлов загрузки (multipart)
	TempDir string `yaml:"temp_dir"`
}

type DatabaseConfig struct {
	Driver           string `yaml:"driver"`
	ConnectionString string `yaml:"connection_string"`
}

type JWTConfig struct {
	AccessSecretKey  string `yaml:"access_secret_key"`
	RefreshSecretKey string `yaml:"refresh_secret_key"`
	AccessTokenTTL   string `yaml:"access_token_ttl"`
	RefreshTokenTTL  string `yaml:"refresh_token_ttl"`
	Issuer           string `yaml:"issuer"`
}

// MediaConfig — параметры S3-совместимого хранилища медиафайлов (MinIO / S3).
type MediaConfig struct {
	Endpoint  string `yaml:"endpoint"`
	PublicURL string `yaml:"public_url"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// WebhookConfig — адрес для уведомлений о подозрительных попытках refresh.
type WebhookConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

// AccessTTL парсит TTL access токена, по умолчанию один час.
func (c *JWTConfig) AccessTTL() (time.Duration, error) {
	if c.AccessTokenTTL == "" {
		return time.Hour, nil
	}
	ttl, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return 0, fmt.Errorf("некорректный access_token_ttl: %w", err)
	}
	return ttl, nil
}

// RefreshTTL парсит TTL refresh токена, по умолчанию десять дней.
func (c *JWTConfig) RefreshTTL() (time.Duration, error) {
	if c.RefreshTokenTTL == "" {
		return 240 * time.Hour, nil
	}
	ttl, err := time.ParseDuration(c.RefreshTokenTTL)
	if err != nil {
		return 0, fmt.Errorf("некорректный refresh_token_ttl: %w", err)
	}
	return ttl, nil
}
