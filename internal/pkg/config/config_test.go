package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "election_portal", cfg.Mongo.Database)
	assert.Equal(t, uint64(100), cfg.Mongo.MaxPoolSize)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Empty(t, cfg.Redis.Password)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 24*time.Hour, cfg.Redis.VoteGuardTTL)
	assert.Equal(t, 4, cfg.Audit.Workers)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "s3cret",
		"ENV":            "production",
		"PORT":           "9090",
		"TOKEN_TTL":      "90m",
		"MONGO_DB":       "ballots",
		"REDIS_DB":       "3",
		"VOTE_GUARD_TTL": "2h",
		"AUDIT_WORKERS":  "8",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "ballots", cfg.Mongo.Database)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 2*time.Hour, cfg.Redis.VoteGuardTTL)
	assert.Equal(t, 8, cfg.Audit.Workers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"zero workers", map[string]string{"JWT_SECRET": "x", "AUDIT_WORKERS": "0"}},
		{"negative ttl", map[string]string{"JWT_SECRET": "x", "TOKEN_TTL": "-1h"}},
		{"bad duration", map[string]string{"JWT_SECRET": "x", "TOKEN_TTL": "soon"}},
		{"bad int", map[string]string{"JWT_SECRET": "x", "REDIS_DB": "zero"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
