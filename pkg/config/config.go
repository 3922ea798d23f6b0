package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	Policy    PolicyConfig
	Campaign  CampaignConfig
	Worker    WorkerConfig
	ZAPI      ZAPIConfig
	SentLog   SentLogConfig
	HTTP      HTTPConfig
	JWT       JWTConfig
	Telemetry TelemetryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL (libro de puntos y directorio de socios).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// PolicyConfig política de vencimiento de puntos.
type PolicyConfig struct {
	PointsValidityDays     int
	ExpiringSoonWindowDays int
}

// CampaignConfig parámetros de la campaña de aviso.
type CampaignConfig struct {
	Name        string // nombre del proyecto; alcance de la deduplicación
	StoreName   string
	SenderName  string
	MinPoints   int // mínimo de puntos por vencer y de saldo para notificar
	MinLeadDays int // días mínimos entre hoy y el vencimiento más próximo
	ImageURL    string
}

// WorkerConfig pool de workers del reporte por lotes.
type WorkerConfig struct {
	PoolSize     int
	FetchTimeout time.Duration
}

// ZAPIConfig credenciales del proveedor de WhatsApp (Z-API).
type ZAPIConfig struct {
	BaseURL       string
	InstanceID    string
	InstanceToken string
	ClientToken   string
	RatePerMinute int
}

// SentLogConfig ubicación del log local de mensajes enviados (SQLite).
type SentLogConfig struct {
	Path string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT para los operadores de la API.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// TelemetryConfig exportador OTLP; vacío = trazas deshabilitadas.
type TelemetryConfig struct {
	OTLPEndpoint string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, ZAPI_INSTANCE_ID, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "aviso-pontos"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "sempre_leitura"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Policy: PolicyConfig{
			PointsValidityDays:     getInt(v, "POINTS_VALIDITY_DAYS", 365),
			ExpiringSoonWindowDays: getInt(v, "EXPIRING_SOON_WINDOW_DAYS", 30),
		},
		Campaign: CampaignConfig{
			Name:        getString(v, "CAMPAIGN_NAME", "aviso_pontos_a_expirar"),
			StoreName:   getString(v, "STORE_NAME", "Livraria Leitura do Boulevard Shopping"),
			SenderName:  getString(v, "SENDER_NAME", "Júlia"),
			MinPoints:   getInt(v, "CAMPAIGN_MIN_POINTS", 1000),
			MinLeadDays: getInt(v, "CAMPAIGN_MIN_LEAD_DAYS", 10),
			ImageURL:    getString(v, "CAMPAIGN_IMAGE_URL", ""),
		},
		Worker: WorkerConfig{
			PoolSize:     getInt(v, "WORKER_POOL_SIZE", 8),
			FetchTimeout: time.Duration(getInt(v, "WORKER_FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		ZAPI: ZAPIConfig{
			BaseURL:       getString(v, "ZAPI_BASE_URL", "https://api.z-api.io"),
			InstanceID:    getString(v, "ZAPI_INSTANCE_ID", ""),
			InstanceToken: getString(v, "ZAPI_INSTANCE_TOKEN", ""),
			ClientToken:   getString(v, "ZAPI_CLIENT_TOKEN", ""),
			RatePerMinute: getInt(v, "ZAPI_RATE_PER_MINUTE", 20),
		},
		SentLog: SentLogConfig{
			Path: getString(v, "SENT_LOG_PATH", "data/messages_sent.db"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "aviso-pontos"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}
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
