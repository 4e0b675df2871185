package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y
// opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// APIConfig configuración del backend REST.
type APIConfig struct {
	BaseURL        string // origen del backend, ej. https://stockpro.runasp.net
	FrontBaseURL   string // origen del front, usado en los enlaces de los QR; vacío = BaseURL
	TimeoutSeconds int
}

// Timeout devuelve el timeout del cliente HTTP.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// QRBaseURL origen a usar en los enlaces de detalle de producto de los QR.
func (c APIConfig) QRBaseURL() string {
	if c.FrontBaseURL != "" {
		return c.FrontBaseURL
	}
	return c.BaseURL
}

// SessionConfig ubicación del archivo de sesión persistida.
type SessionConfig struct {
	Dir string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo .env / config.env). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, API_BASE_URL, API_TIMEOUT_SECONDS, SESSION_DIR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "stockpro-cli"),
		},
		API: APIConfig{
			BaseURL:        getString(v, "API_BASE_URL", "https://stockpro.runasp.net"),
			FrontBaseURL:   getString(v, "FRONT_BASE_URL", ""),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 30),
		},
		Session: SessionConfig{
			Dir: getString(v, "SESSION_DIR", defaultSessionDir()),
		},
	}

	return cfg, nil
}

// defaultSessionDir carpeta de sesión por defecto: ~/.stockpro, o .stockpro
// relativo si el home no es resoluble.
func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stockpro"
	}
	return filepath.Join(home, ".stockpro")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
