package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// AmortizationSystem – immutable value object
// ---------------------------------------------------------------------------

// AmortizationSystem identifies how principal is repaid across installments.
type AmortizationSystem struct {
	value string
}

const (
	amortizationSAC   = "SAC"
	amortizationPRICE = "PRICE"
)

var (
	// AmortizationSAC repays a constant principal portion every period.
	AmortizationSAC = AmortizationSystem{value: amortizationSAC}
	// AmortizationPRICE charges a constant installment every period.
	AmortizationPRICE = AmortizationSystem{value: amortizationPRICE}
)

var validAmortizationSystems = map[string]AmortizationSystem{
	amortizationSAC:   AmortizationSAC,
	amortizationPRICE: AmortizationPRICE,
}

// NewAmortizationSystem creates an AmortizationSystem from a raw string. The
// lookup is case-insensitive.
func NewAmortizationSystem(s string) (AmortizationSystem, error) {
	v, ok := validAmortizationSystems[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return AmortizationSystem{}, fmt.Errorf("%w: %q", ErrInvalidAmortizationSystem, s)
	}
	return v, nil
}

// String returns the string representation of the system.
func (s AmortizationSystem) String() string { return s.value }

// IsZero returns true if the system has not been initialised.
func (s AmortizationSystem) IsZero() bool { return s.value == "" }

// Equal returns true when both systems carry the same value.
func (s AmortizationSystem) Equal(other AmortizationSystem) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// AnalysisKind – immutable value object
// ---------------------------------------------------------------------------

// AnalysisKind names the analyzer that produced a result.
type AnalysisKind struct {
	value string
}

const (
	analysisKindLoan      = "LOAN"
	analysisKindRevolving = "REVOLVING"
)

var (
	AnalysisKindLoan      = AnalysisKind{value: analysisKindLoan}
	AnalysisKindRevolving = AnalysisKind{value: analysisKindRevolving}
)

// String returns the string representation of the kind.
func (k AnalysisKind) String() string { return k.value }

// IsZero returns true if the kind has not been initialised.
func (k AnalysisKind) IsZero() bool { return k.value == "" }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidAmortizationSystem = errors.New("invalid amortization system")
	ErrInvalidMarketRate         = errors.New("invalid market rate")
)
