package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Port)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NotEmpty(t, cfg.DBHost)
	assert.NotEmpty(t, cfg.RedisURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "missing port",
			cfg:     Config{JWTSecret: "secret"},
			wantErr: true,
		},
		{
			name:    "missing jwt secret",
			cfg:     Config{Port: "8460"},
			wantErr: true,
		},
		{
			name:    "dev defaults are fine outside production",
			cfg:     Config{Port: "8460", JWTSecret: "dev-secret-change-in-production", Env: "development"},
			wantErr: false,
		},
		{
			name:    "default jwt secret rejected in production",
			cfg:     Config{Port: "8460", JWTSecret: "dev-secret-change-in-production", Env: "production"},
			wantErr: true,
		},
		{
			name:    "short jwt secret rejected in production",
			cfg:     Config{Port: "8460", JWTSecret: "short", Env: "production", DBPassword: "sufficiently-strong"},
			wantErr: true,
		},
		{
			name: "valid production config",
			cfg: Config{
				Port:       "8460",
				JWTSecret:  "0123456789abcdef0123456789abcdef",
				Env:        "production",
				DBPassword: "sufficiently-strong",
				DBSSLMode:  "require",
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
