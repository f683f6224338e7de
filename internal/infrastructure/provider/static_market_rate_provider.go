package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/port"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
	"github.com/pCruvinel/octoapps-sub000/internal/infrastructure/config"
)

// StaticMarketRateProvider serves reference rates from a configured table.
// A contract month without a published rate falls back to the most recent
// earlier month of the same category.
type StaticMarketRateProvider struct {
	rates  map[string]map[string]valueobject.MarketRate
	months map[string][]string
}

// NewStaticMarketRateProvider creates a provider over table. Category keys
// are matched case-insensitively.
func NewStaticMarketRateProvider(table config.MarketRateTable) *StaticMarketRateProvider {
	p := &StaticMarketRateProvider{
		rates:  make(map[string]map[string]valueobject.MarketRate, len(table)),
		months: make(map[string][]string, len(table)),
	}
	for category, byMonth := range table {
		key := strings.ToUpper(category)
		p.rates[key] = byMonth
		months := make([]string, 0, len(byMonth))
		for m := range byMonth {
			months = append(months, m)
		}
		sort.Strings(months)
		p.months[key] = months
	}
	return p
}

// MarketRate returns the rate for category at the month of contractDate.
func (p *StaticMarketRateProvider) MarketRate(_ context.Context, category string, contractDate time.Time) (valueobject.MarketRate, error) {
	key := strings.ToUpper(strings.TrimSpace(category))
	byMonth, ok := p.rates[key]
	if !ok {
		return valueobject.MarketRate{}, fmt.Errorf("%w: category %s", port.ErrMarketRateNotFound, key)
	}

	month := contractDate.Format(config.MarketRateMonthLayout)
	if rate, ok := byMonth[month]; ok {
		return rate, nil
	}

	// "YYYY-MM" keys sort chronologically.
	months := p.months[key]
	i := sort.SearchStrings(months, month)
	if i == 0 {
		return valueobject.MarketRate{}, fmt.Errorf("%w: %s before %s", port.ErrMarketRateNotFound, key, month)
	}
	return byMonth[months[i-1]], nil
}
