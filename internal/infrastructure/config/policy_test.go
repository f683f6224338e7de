package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/service"
	"github.com/pCruvinel/octoapps-sub000/internal/infrastructure/config"
	"github.com/pCruvinel/octoapps-sub000/pkg/testutil"
)

const samplePolicy = `
policy:
  abuse_threshold_pct: 40
  fee_threshold_ratio: "0.02"
  revolving_months: 12
market_rates:
  credito_pessoal:
    "2024-01":
      monthly: 0.0612
    "2024-02":
      monthly: "0.0598"
      annual: "1.0054"
  cartao_rotativo:
    "2024-01":
      monthly: 0.1285
`

func TestParseSettings(t *testing.T) {
	t.Run("overrides defaults field by field", func(t *testing.T) {
		settings, err := config.ParseSettings([]byte(samplePolicy))
		require.NoError(t, err)

		defaults := service.DefaultPolicy()
		testutil.AssertDecimalEqual(t, testutil.D("40"), settings.Policy.AbuseThresholdPct)
		testutil.AssertDecimalEqual(t, testutil.D("0.02"), settings.Policy.FeeThresholdRatio)
		assert.Equal(t, 12, settings.Policy.RevolvingMonths)
		testutil.AssertDecimalEqual(t, defaults.AbuseLabelThresholdPct, settings.Policy.AbuseLabelThresholdPct)
		testutil.AssertDecimalEqual(t, defaults.MaxPenaltyRate, settings.Policy.MaxPenaltyRate)
	})

	t.Run("builds the market-rate table by upper-case category", func(t *testing.T) {
		settings, err := config.ParseSettings([]byte(samplePolicy))
		require.NoError(t, err)

		require.Contains(t, settings.MarketRates, "CREDITO_PESSOAL")
		require.Contains(t, settings.MarketRates, "CARTAO_ROTATIVO")
		jan := settings.MarketRates["CREDITO_PESSOAL"]["2024-01"]
		testutil.AssertDecimalEqual(t, testutil.D("0.0612"), jan.Monthly())
		assert.True(t, jan.Annual().IsPositive(), "annual rate is derived when omitted")
		feb := settings.MarketRates["CREDITO_PESSOAL"]["2024-02"]
		testutil.AssertDecimalEqual(t, testutil.D("1.0054"), feb.Annual())
	})

	t.Run("empty document keeps defaults", func(t *testing.T) {
		settings, err := config.ParseSettings([]byte(""))
		require.NoError(t, err)
		assert.Equal(t, service.DefaultPolicy().RevolvingMonths, settings.Policy.RevolvingMonths)
		assert.Empty(t, settings.MarketRates)
	})

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"malformed yaml", "policy: [", "decode policy file"},
		{"malformed number", "policy:\n  max_penalty_rate: dois\n", "policy.max_penalty_rate"},
		{"negative threshold", "policy:\n  abuse_threshold_pct: -1\n", "validate policy"},
		{"bad month key", "market_rates:\n  X:\n    \"01/2024\":\n      monthly: 0.01\n", "must be YYYY-MM"},
		{"zero market rate", "market_rates:\n  X:\n    \"2024-01\":\n      monthly: 0\n", "market_rates.X.2024-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseSettings([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		settings, err := config.LoadSettings("")
		require.NoError(t, err)
		assert.Equal(t, service.DefaultPolicy(), settings.Policy)
		assert.NotNil(t, settings.MarketRates)
	})

	t.Run("reads the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte(samplePolicy), 0o600))

		settings, err := config.LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, 12, settings.Policy.RevolvingMonths)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read policy file")
	})
}
