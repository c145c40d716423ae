package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/identity-api/pkg/config"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{
		"JWT_SECRET": "un-secreto-suficientemente-largo",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoreDriverPostgres, cfg.App.StoreDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL(), "TTL por defecto de 7 días")
	assert.Equal(t, 7*24*time.Hour, cfg.Invite.TTL())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/identity?sslmode=disable", cfg.DB.ConnectionString())
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestFromViper_ValoresComoString(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{
		"JWT_SECRET":             "un-secreto-suficientemente-largo",
		"JWT_EXPIRATION_MINUTES": "60",
		"HTTP_PORT":              "9090",
		"INVITE_BASE_URL":        "https://app.example.com/",
		"DATABASE_URL":           "postgres://u:p@db:5432/x",
		"DB_AUTO_MIGRATE":        "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.JWT.TTL())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://app.example.com", cfg.Invite.BaseURL)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestFromViper_SecretRequerido(t *testing.T) {
	_, err := config.FromViper(newViper(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromViper_MemoryEnProduccion(t *testing.T) {
	_, err := config.FromViper(newViper(map[string]any{
		"JWT_SECRET":   "un-secreto-suficientemente-largo",
		"APP_ENV":      "production",
		"STORE_DRIVER": "memory",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestFromViper_AutoMigrate(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"sin definir usa el default", nil, true},
		{"string true", "true", true},
		{"bool true", true, true},
		{"string false", "false", false},
		{"bool false", false, false},
		{"valor inválido usa el default", "quizás", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := map[string]any{"JWT_SECRET": "un-secreto-suficientemente-largo"}
			if tt.value != nil {
				values["DB_AUTO_MIGRATE"] = tt.value
			}
			cfg, err := config.FromViper(newViper(values))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.DB.AutoMigrate)
		})
	}
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "identity", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/identity?sslmode=require", c.DSN())
}
