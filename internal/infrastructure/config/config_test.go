package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60*time.Second, cfg.ReaperInterval)
	assert.Equal(t, 15*time.Minute, cfg.HoldGraceWindow)
	assert.Equal(t, 10*time.Second, cfg.HoldLockTTL)
	assert.Equal(t, 12, cfg.CheckoutHour)
	assert.Equal(t, 0.30, cfg.DepositRate)
	assert.Equal(t, 0.10, cfg.LateFeeRate)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HOLD_GRACE_WINDOW", "30")
	t.Setenv("DEPOSIT_RATE", "0.5")
	t.Setenv("CHECKOUT_HOUR", "14")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.HoldGraceWindow)
	assert.Equal(t, 0.5, cfg.DepositRate)
	assert.Equal(t, 14, cfg.CheckoutHour)
}

func TestLoadConfig_InvalidNumberFallsBackToDefault(t *testing.T) {
	t.Setenv("CHECKOUT_HOUR", "noon")
	t.Setenv("LATE_FEE_RATE", "ten percent")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.CheckoutHour)
	assert.Equal(t, 0.10, cfg.LateFeeRate)
}
