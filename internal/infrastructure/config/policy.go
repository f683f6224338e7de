package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/service"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

// MarketRateMonthLayout is the key layout of market-rate table months.
const MarketRateMonthLayout = "2006-01"

// MarketRateTable maps an upper-case product category to monthly reference
// rates keyed by MarketRateMonthLayout.
type MarketRateTable map[string]map[string]valueobject.MarketRate

// Settings is the analysis configuration read from POLICY_FILE.
type Settings struct {
	MarketRates MarketRateTable
	Policy      service.Policy
}

// Numbers are kept as strings so they reach decimal.Decimal without a float
// round trip.
type policyFile struct {
	Policy      policySection                     `yaml:"policy"`
	MarketRates map[string]map[string]rateSection `yaml:"market_rates"`
}

type policySection struct {
	AbuseThresholdPct       string `yaml:"abuse_threshold_pct"`
	AbuseLabelThresholdPct  string `yaml:"abuse_label_threshold_pct"`
	FeeThresholdRatio       string `yaml:"fee_threshold_ratio"`
	MaxDefaultInterestRate  string `yaml:"max_default_interest_rate"`
	MaxPenaltyRate          string `yaml:"max_penalty_rate"`
	CapitalizationTolerance string `yaml:"capitalization_tolerance"`
	InstallmentTolerance    string `yaml:"installment_tolerance"`
	RevolvingMonths         int    `yaml:"revolving_months"`
}

type rateSection struct {
	Monthly string `yaml:"monthly"`
	Annual  string `yaml:"annual"`
}

// LoadSettings reads the policy file at path over the built-in defaults. An
// empty path returns the defaults and an empty market-rate table.
func LoadSettings(path string) (Settings, error) {
	settings := Settings{Policy: service.DefaultPolicy(), MarketRates: MarketRateTable{}}
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read policy file: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes a YAML policy document over the built-in defaults.
func ParseSettings(data []byte) (Settings, error) {
	var raw policyFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("decode policy file: %w", err)
	}

	policy := service.DefaultPolicy()
	fields := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"abuse_threshold_pct", raw.Policy.AbuseThresholdPct, &policy.AbuseThresholdPct},
		{"abuse_label_threshold_pct", raw.Policy.AbuseLabelThresholdPct, &policy.AbuseLabelThresholdPct},
		{"fee_threshold_ratio", raw.Policy.FeeThresholdRatio, &policy.FeeThresholdRatio},
		{"max_default_interest_rate", raw.Policy.MaxDefaultInterestRate, &policy.MaxDefaultInterestRate},
		{"max_penalty_rate", raw.Policy.MaxPenaltyRate, &policy.MaxPenaltyRate},
		{"capitalization_tolerance", raw.Policy.CapitalizationTolerance, &policy.CapitalizationTolerance},
		{"installment_tolerance", raw.Policy.InstallmentTolerance, &policy.InstallmentTolerance},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		d, err := decimal.NewFromString(f.value)
		if err != nil {
			return Settings{}, fmt.Errorf("policy.%s: %w", f.name, err)
		}
		*f.dst = d
	}
	if raw.Policy.RevolvingMonths != 0 {
		policy.RevolvingMonths = raw.Policy.RevolvingMonths
	}
	if err := policy.Validate(); err != nil {
		return Settings{}, fmt.Errorf("validate policy: %w", err)
	}

	table, err := parseMarketRates(raw.MarketRates)
	if err != nil {
		return Settings{}, err
	}
	return Settings{Policy: policy, MarketRates: table}, nil
}

func parseMarketRates(raw map[string]map[string]rateSection) (MarketRateTable, error) {
	table := make(MarketRateTable, len(raw))
	for category, months := range raw {
		key := strings.ToUpper(strings.TrimSpace(category))
		if key == "" {
			return nil, fmt.Errorf("market_rates: empty category")
		}
		byMonth := make(map[string]valueobject.MarketRate, len(months))
		for month, r := range months {
			if _, err := time.Parse(MarketRateMonthLayout, month); err != nil {
				return nil, fmt.Errorf("market_rates.%s: month %q must be YYYY-MM", category, month)
			}
			monthly, err := decimal.NewFromString(r.Monthly)
			if err != nil {
				return nil, fmt.Errorf("market_rates.%s.%s.monthly: %w", category, month, err)
			}
			annual := decimal.Zero
			if r.Annual != "" {
				if annual, err = decimal.NewFromString(r.Annual); err != nil {
					return nil, fmt.Errorf("market_rates.%s.%s.annual: %w", category, month, err)
				}
			}
			rate, err := valueobject.NewMarketRate(monthly, annual)
			if err != nil {
				return nil, fmt.Errorf("market_rates.%s.%s: %w", category, month, err)
			}
			byMonth[month] = rate
		}
		table[key] = byMonth
	}
	return table, nil
}
