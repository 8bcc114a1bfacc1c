package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.True(t, cfg.CommercialMargin.Equal(decimal.RequireFromString("1.4")))
	assert.Equal(t, 95, cfg.MaxDiscount)
	assert.Equal(t, 5, cfg.DiscountStep)
	assert.True(t, cfg.DenominationTolerance.Equal(decimal.RequireFromString("0.02")))
	assert.Equal(t, 50, cfg.ConvergenceMaxIterations)
	assert.True(t, cfg.TransferRejectRefundsSender)
	assert.Equal(t, 5*time.Second, cfg.RateAPITimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("COMMERCIAL_MARGIN", "1.25")
	t.Setenv("DENOMINATION_TOLERANCE", "0.05")
	t.Setenv("TRANSFER_REJECT_REFUNDS_SENDER", "false")
	t.Setenv("RATE_CACHE_TTL", "0s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.True(t, cfg.CommercialMargin.Equal(decimal.RequireFromString("1.25")))
	assert.True(t, cfg.DenominationTolerance.Equal(decimal.RequireFromString("0.05")))
	assert.False(t, cfg.TransferRejectRefundsSender)
	assert.Equal(t, time.Duration(0), cfg.RateCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_RejectsMarginNotAboveOne(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("COMMERCIAL_MARGIN", "0.9")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.CommercialMargin.Equal(decimal.RequireFromString("1.4")))
}
