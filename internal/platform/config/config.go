// Package config loads the typed application configuration from the
// environment. main loads .env first via godotenv, so local development
// works without exporting anything.
package config

import (
	"github.com/joeshaw/envdecode"
)

// Config holds all runtime settings.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        string `env:"APP_PORT,default=8080"`
	Env         string `env:"APP_ENV,default=development"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	UploadDir   string `env:"UPLOAD_DIR,default=./uploads"`

	SMTP struct {
		Host     string `env:"SMTP_HOST,default=localhost"`
		Port     string `env:"SMTP_PORT,default=1025"`
		From     string `env:"SMTP_FROM,default=orders@arborhaus.example"`
		Username string `env:"SMTP_USERNAME,default="`
		Password string `env:"SMTP_PASSWORD,default="`
	}

	Payment struct {
		APIKey string `env:"PAYMENT_API_KEY,default="`
		Env    string `env:"PAYMENT_ENV,default=sandbox"`
	}
}

// Load decodes the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
