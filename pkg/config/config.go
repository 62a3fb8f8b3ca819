package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del dashboard (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	API    APIConfig
	Tokens TokenConfig
	HTTP   HTTPConfig
	Mock   MockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig backend REST que consume el dashboard.
type APIConfig struct {
	BaseURL      string        // ej. http://localhost:8080/api
	Timeout      time.Duration // plazo fijo por petición
	RateLimitRPS float64       // 0 = sin límite de salida
}

// TokenConfig dónde se persisten auth_token y refresh_token.
type TokenConfig struct {
	Driver      string // file, redis, memory
	FilePath    string // vacío = <config dir>/invorya/tokens.json
	RedisURL    string
	RedisPrefix string
}

// HTTPConfig configuración del servidor HTTP del dashboard.
type HTTPConfig struct {
	Host     string
	Port     int
	DocsPath string // swagger.json servido en /docs; vacío o inexistente = deshabilitado
}

// MockConfig backend simulado de cmd/mockapi.
type MockConfig struct {
	Port      int
	JWTSecret string
	Seed      bool // cargar tenant y usuarios de demo al arrancar
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_URL, TOKEN_STORE, etc.
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
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invorya-dashboard"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:      strings.TrimRight(getString(v, "API_URL", "http://localhost:8080/api"), "/"),
			Timeout:      time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 30)) * time.Second,
			RateLimitRPS: getFloat(v, "API_RATE_LIMIT_RPS", 0),
		},
		Tokens: TokenConfig{
			Driver:      getString(v, "TOKEN_STORE", "file"),
			FilePath:    getString(v, "TOKEN_FILE", ""),
			RedisURL:    getString(v, "REDIS_URL", "redis://localhost:6379/0"),
			RedisPrefix: getString(v, "REDIS_PREFIX", "invorya:"),
		},
		HTTP: HTTPConfig{
			Host:     getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:     getInt(v, "HTTP_PORT", 3000),
			DocsPath: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
		Mock: MockConfig{
			Port:      getInt(v, "MOCKAPI_PORT", 8080),
			JWTSecret: getString(v, "MOCKAPI_JWT_SECRET", "mockapi-secret"),
			Seed:      getBool(v, "MOCKAPI_SEED", true),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_URL vacío")
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("config: API_TIMEOUT_SECONDS debe ser positivo")
	}
	return cfg, nil
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
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
