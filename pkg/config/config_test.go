package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viverodavinci/vivero-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, config.PricingClient, cfg.Sales.Pricing)
	assert.Equal(t, "/img/productos", cfg.Upload.URLPrefix)
	assert.False(t, cfg.Kafka.Enabled())
	assert.True(t, cfg.DB.Migrate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SALE_PRICING", "CATALOG")
	t.Setenv("KAFKA_BROKERS", "kafka:9092, kafka2:9092")
	t.Setenv("DB_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, config.PricingCatalog, cfg.Sales.Pricing)
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.DB.Migrate)
}

func TestLoad_SinSecret_Falla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_PricingInvalido_Falla(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("SALE_PRICING", "gratis")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "vivero", Password: "p@ss:w/rd", DBName: "vivero_db", SSLMode: "disable"}

	assert.Equal(t, "postgres://vivero:p%40ss%3Aw%2Frd@db:5432/vivero_db?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestRead_NoValida(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_NAME", "vivero_import")

	cfg := config.Read()
	assert.Equal(t, "vivero_import", cfg.DB.DBName)
	assert.Error(t, cfg.Validate())
}
