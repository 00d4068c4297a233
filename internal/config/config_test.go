package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 3*time.Second, cfg.StorageTimeout)
	assert.Equal(t, "bakery.orders", cfg.RabbitMQExchange)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORSOrigins)
}

func TestLoad_MySQLFromParts(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MYSQL_USER", "poohbae")
	t.Setenv("MYSQL_PASSWORD", "pw")
	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_DATABASE", "cakehistory")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "poohbae:pw@tcp(db:3306)/cakehistory?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DatabaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			env:     map[string]string{"DB_DRIVER": "sqlite", "DATABASE_URL": "file::memory:", "JWT_SECRET": ""},
			wantErr: "JWT_SECRET",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"DB_DRIVER": "oracle", "DATABASE_URL": "x", "JWT_SECRET": "s"},
			wantErr: "not supported",
		},
		{
			name:    "missing dsn",
			env:     map[string]string{"DB_DRIVER": "postgres", "DATABASE_URL": "", "JWT_SECRET": "s"},
			wantErr: "DATABASE_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
