package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	DB         DBConfig
	JWT        JWTConfig
	Session    SessionConfig
	HTTP       HTTPConfig
	Security   SecurityConfig
	Monitoring MonitoringConfig
	Features   FeatureFlags
	RateLimit  RateLimitConfig
	Cache      CacheConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string `validate:"oneof=development staging production test"`
	Name     string `validate:"required"`
	Version  string
	URL      string `validate:"omitempty,url"`
	Timezone string `validate:"required"`
}

// IsDevelopment informa si la app corre en modo desarrollo.
func (c AppConfig) IsDevelopment() bool { return c.Env == "development" }

// IsProduction informa si la app corre en producción.
func (c AppConfig) IsProduction() bool { return c.Env == "production" }

// Location devuelve la zona horaria usada para calcular el mes en curso.
// Si el nombre no es válido se usa UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DBConfig configuración de PostgreSQL. DATABASE_URL es obligatorio.
type DBConfig struct {
	DatabaseURL string        `validate:"required,url"`
	PoolSize    int           `validate:"min=1,max=200"`
	Timeout     time.Duration `validate:"min=0"`
}

// JWTConfig configuración del token de sesión.
type JWTConfig struct {
	Secret     string `validate:"required,min=32"`
	Expiration int    `validate:"min=1"` // minutos
	Issuer     string
}

// SessionConfig configuración de la cookie de sesión.
type SessionConfig struct {
	Secret       string `validate:"required,min=32"`
	CookieName   string `validate:"required"`
	CookieSecure bool
	BcryptCost   int `validate:"min=4,max=31"`
}

// SecurityConfig secretos opcionales de proveedores de autenticación externos.
type SecurityConfig struct {
	AuthProviderSecret string `validate:"omitempty,min=32"`
	AllowedOrigins     []string
}

// MonitoringConfig logging, reporte de errores y telemetría.
type MonitoringConfig struct {
	LogLevel          string `validate:"oneof=trace debug info warn error"`
	SentryDSN         string `validate:"omitempty,url"`
	SentryEnvironment string
	OTLPEndpoint      string
}

// SentryEnabled informa si hay DSN configurado.
func (c MonitoringConfig) SentryEnabled() bool { return c.SentryDSN != "" }

// TelemetryEnabled informa si hay un colector OTLP configurado.
func (c MonitoringConfig) TelemetryEnabled() bool { return c.OTLPEndpoint != "" }

// FeatureFlags banderas de funcionalidades expuestas en /api/health.
type FeatureFlags struct {
	Chat          bool `json:"chat"`
	Notifications bool `json:"notifications"`
	Analytics     bool `json:"analytics"`
	Swagger       bool `json:"swagger"`
}

// RateLimitConfig límites para rutas de API y autenticación.
type RateLimitConfig struct {
	Max    int           `validate:"min=1"`
	Window time.Duration `validate:"min=1s"`
}

// CacheConfig TTL de la caché de listados por propietario. 0 la desactiva.
type CacheConfig struct {
	PropertyTTL time.Duration `validate:"min=0"`
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int `validate:"min=1,max=65535"`
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ValidationErrors enumera todas las variables inválidas o ausentes.
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	return "configuración inválida:\n  - " + strings.Join(e, "\n  - ")
}

// envNames traduce el namespace del struct a la variable de entorno correspondiente,
// para que el listado de errores sea accionable.
var envNames = map[string]string{
	"Config.App.Env":                     "APP_ENV",
	"Config.App.Name":                    "APP_NAME",
	"Config.App.URL":                     "APP_URL",
	"Config.App.Timezone":                "APP_TIMEZONE",
	"Config.DB.DatabaseURL":              "DATABASE_URL",
	"Config.DB.PoolSize":                 "DATABASE_POOL_SIZE",
	"Config.DB.Timeout":                  "DATABASE_TIMEOUT",
	"Config.JWT.Secret":                  "JWT_SECRET",
	"Config.JWT.Expiration":              "JWT_EXPIRATION_MINUTES",
	"Config.Session.Secret":              "SESSION_SECRET",
	"Config.Session.CookieName":          "SESSION_COOKIE_NAME",
	"Config.Session.BcryptCost":          "BCRYPT_COST",
	"Config.Security.AuthProviderSecret": "AUTH_PROVIDER_SECRET",
	"Config.Monitoring.LogLevel":         "LOG_LEVEL",
	"Config.Monitoring.SentryDSN":        "SENTRY_DSN",
	"Config.RateLimit.Max":               "API_RATE_LIMIT_MAX",
	"Config.RateLimit.Window":            "API_RATE_LIMIT_WINDOW",
	"Config.Cache.PropertyTTL":           "PROPERTY_CACHE_TTL",
	"Config.HTTP.Port":                   "HTTP_PORT",
}

var validate = validator.New()

// Validate revisa la configuración completa y devuelve ValidationErrors con cada violación.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, describe(fe))
	}
	return out
}

// RuntimeCheck detecta valores que Validate acepta pero que degradan el servicio:
// una zona horaria que cae a UTC o una cookie de sesión sin Secure en producción.
// El arranque sigue; /api/health reporta la configuración como unhealthy.
func (c *Config) RuntimeCheck() error {
	var out ValidationErrors
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		out = append(out, "APP_TIMEZONE: zona horaria desconocida, se usa UTC")
	}
	if c.App.IsProduction() && !c.Session.CookieSecure {
		out = append(out, "SESSION_COOKIE_SECURE: debe ser true en producción")
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func describe(fe validator.FieldError) string {
	name, ok := envNames[fe.Namespace()]
	if !ok {
		name = fe.Namespace()
	}
	switch fe.Tag() {
	case "required":
		return name + ": es obligatorio"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s: debe tener al menos %s caracteres", name, fe.Param())
		}
		return fmt.Sprintf("%s: debe ser >= %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s: debe ser <= %s", name, fe.Param())
	case "url":
		return name + ": formato de URL inválido"
	case "oneof":
		return fmt.Sprintf("%s: debe ser uno de [%s]", name, fe.Param())
	default:
		return fmt.Sprintf("%s: no cumple %q", name, fe.Tag())
	}
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo)
// y la valida. Las env vars tienen prioridad.
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
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper construye la configuración sin validarla (útil en tests y en el CLI).
func FromViper(v *viper.Viper) *Config {
	env := getString(v, "APP_ENV", "development")
	return &Config{
		App: AppConfig{
			Env:      env,
			Name:     getString(v, "APP_NAME", "Braian.rent"),
			Version:  getString(v, "APP_VERSION", "0.1.0"),
			URL:      getString(v, "APP_URL", "http://localhost:3000"),
			Timezone: getString(v, "APP_TIMEZONE", "Europe/Warsaw"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			PoolSize:    getInt(v, "DATABASE_POOL_SIZE", 10),
			Timeout:     time.Duration(getInt(v, "DATABASE_TIMEOUT", 20000)) * time.Millisecond,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24*30),
			Issuer:     getString(v, "JWT_ISSUER", "braian-rent"),
		},
		Session: SessionConfig{
			Secret:       getString(v, "SESSION_SECRET", ""),
			CookieName:   getString(v, "SESSION_COOKIE_NAME", "braian_session"),
			CookieSecure: getBool(v, "SESSION_COOKIE_SECURE", env == "production"),
			BcryptCost:   getInt(v, "BCRYPT_COST", 10),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Security: SecurityConfig{
			AuthProviderSecret: firstNonEmpty(getString(v, "AUTH_PROVIDER_SECRET", ""), getString(v, "NEXTAUTH_SECRET", "")),
			AllowedOrigins:     allowedOrigins(env, getString(v, "APP_URL", "http://localhost:3000")),
		},
		Monitoring: MonitoringConfig{
			LogLevel:          getString(v, "LOG_LEVEL", "info"),
			SentryDSN:         getString(v, "SENTRY_DSN", ""),
			SentryEnvironment: getString(v, "SENTRY_ENVIRONMENT", env),
			OTLPEndpoint:      getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		Features: FeatureFlags{
			Chat:          getBool(v, "ENABLE_CHAT", true),
			Notifications: getBool(v, "ENABLE_NOTIFICATIONS", true),
			Analytics:     getBool(v, "ENABLE_ANALYTICS", false),
			Swagger:       getBool(v, "ENABLE_SWAGGER", env == "development"),
		},
		RateLimit: RateLimitConfig{
			Max:    getInt(v, "API_RATE_LIMIT_MAX", 100),
			Window: time.Duration(getInt(v, "API_RATE_LIMIT_WINDOW", 900000)) * time.Millisecond,
		},
		Cache: CacheConfig{
			PropertyTTL: time.Duration(getInt(v, "PROPERTY_CACHE_TTL", 15)) * time.Second,
		},
	}
}

func allowedOrigins(env, appURL string) []string {
	if env == "development" {
		return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	return []string{appURL}
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return strings.EqualFold(strings.TrimSpace(v.GetString(key)), "true")
	}
	return def
}
