package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Upload UploadConfig
	Sales  SalesConfig
	Kafka  KafkaConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env          string // development, production
	Name         string
	LogLevel     string
	FrontendDist string // build de la SPA servido en producción
}

// IsProduction indica si se debe servir el frontend compilado.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Migrate     bool // aplicar migraciones embebidas al iniciar
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// UploadConfig ubicación y límites de las imágenes de productos.
type UploadConfig struct {
	Dir       string // carpeta en disco
	URLPrefix string // prefijo público con el que se sirven
	MaxBytes  int64
}

// SalesConfig reglas de negocio de ventas.
type SalesConfig struct {
	// Pricing "client" respeta el precio unitario enviado; "catalog" usa el precio vigente del producto.
	Pricing                 string
	DefaultEmployeePassword string
	LowStockThreshold       int // stock a partir del cual el tablero marca el producto
}

// KafkaConfig publicación de eventos de ventas. Sin brokers no se publica nada.
type KafkaConfig struct {
	Brokers    []string
	SalesTopic string
}

// Enabled indica si hay brokers configurados.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

const (
	PricingClient  = "client"
	PricingCatalog = "catalog"
)

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo)
// y la valida. Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	cfg := Read()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read lee la configuración sin validarla (herramientas de línea de comandos que no
// levantan el servidor, como el importador).
func Read() *Config {
	v := viper.New()

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

	port := getInt(v, "HTTP_PORT", 3000)
	if v.IsSet("PORT") {
		port = getInt(v, "PORT", port)
	}

	cfg := &Config{
		App: AppConfig{
			Env:          getString(v, "APP_ENV", getString(v, "NODE_ENV", "development")),
			Name:         getString(v, "APP_NAME", "vivero-davinci"),
			LogLevel:     getString(v, "LOG_LEVEL", "info"),
			FrontendDist: getString(v, "FRONTEND_DIST", "frontend/dist"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "vivero_db"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "vivero-davinci"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: port,
		},
		Upload: UploadConfig{
			Dir:       getString(v, "UPLOAD_DIR", "frontend/public/img/productos"),
			URLPrefix: strings.TrimRight(getString(v, "UPLOAD_URL_PREFIX", "/img/productos"), "/"),
			MaxBytes:  int64(getInt(v, "UPLOAD_MAX_BYTES", 5*1024*1024)),
		},
		Sales: SalesConfig{
			Pricing:                 strings.ToLower(getString(v, "SALE_PRICING", PricingClient)),
			DefaultEmployeePassword: getString(v, "EMPLOYEE_DEFAULT_PASSWORD", "123456"),
			LowStockThreshold:       getInt(v, "LOW_STOCK_THRESHOLD", 5),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(getString(v, "KAFKA_BROKERS", "")),
			SalesTopic: getString(v, "KAFKA_SALES_TOPIC", "ventas"),
		},
	}
	return cfg
}

// Validate verifica los valores sin los que la API no puede arrancar.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET es obligatorio")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("config: JWT_EXPIRATION_MINUTES debe ser mayor a 0")
	}
	switch c.Sales.Pricing {
	case PricingClient, PricingCatalog:
	default:
		return fmt.Errorf("config: SALE_PRICING inválido %q (client|catalog)", c.Sales.Pricing)
	}
	if c.Upload.MaxBytes <= 0 {
		return errors.New("config: UPLOAD_MAX_BYTES debe ser mayor a 0")
	}
	return nil
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
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
