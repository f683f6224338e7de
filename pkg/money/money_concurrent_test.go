package money

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

// TestMoney_ConcurrentParseFormat parses and formats the same inputs across
// goroutines. The package keeps no state, so every goroutine must observe the
// same results as a sequential run.
func TestMoney_ConcurrentParseFormat(t *testing.T) {
	const goroutines = 100

	wantAmount := decimal.RequireFromString("1234.56")
	wantRate := decimal.RequireFromString("0.012")
	wantFormatted := "R$ 1.234,56"

	type result struct {
		amount    decimal.Decimal
		rate      decimal.Decimal
		formatted string
	}

	results := make([]result, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(idx int) {
			defer wg.Done()
			r := &results[idx]
			r.amount = ParseBRL("R$ 1.234,56")
			r.rate = ParsePercent("1,2%")
			r.formatted = FormatBRL(r.amount)
		}(i)
	}

	wg.Wait()

	for i, r := range results {
		if !r.amount.Equal(wantAmount) {
			t.Errorf("goroutine %d: amount = %s, want %s", i, r.amount, wantAmount)
		}
		if !r.rate.Equal(wantRate) {
			t.Errorf("goroutine %d: rate = %s, want %s", i, r.rate, wantRate)
		}
		if r.formatted != wantFormatted {
			t.Errorf("goroutine %d: formatted = %q, want %q", i, r.formatted, wantFormatted)
		}
	}
}
