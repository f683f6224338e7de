package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
)

// Policy carries the configurable thresholds of the analyzers. None of these
// values is business law; they are supplied by the operator.
type Policy struct {
	// AbuseThresholdPct is the relative excess (percent) above which HasAbuse
	// is set.
	AbuseThresholdPct decimal.Decimal
	// AbuseLabelThresholdPct is the threshold quoted by display surfaces. It
	// is reported alongside results and never drives HasAbuse.
	AbuseLabelThresholdPct decimal.Decimal
	// FeeThresholdRatio flags an accessory charge whose total exceeds this
	// fraction of the principal.
	FeeThresholdRatio decimal.Decimal
	// MaxDefaultInterestRate is the monthly cap for default interest (mora).
	MaxDefaultInterestRate decimal.Decimal
	// MaxPenaltyRate is the cap for the late-payment penalty (multa).
	MaxPenaltyRate decimal.Decimal
	// CapitalizationTolerance is the per-period interest gap tolerated before
	// capitalization is reported.
	CapitalizationTolerance decimal.Decimal
	// InstallmentTolerance is the accepted gap between the contracted and the
	// computed first installment.
	InstallmentTolerance decimal.Decimal
	// RevolvingMonths is the default revolving horizon.
	RevolvingMonths int
}

// DefaultPolicy returns the thresholds used when no policy file is configured.
func DefaultPolicy() Policy {
	return Policy{
		AbuseThresholdPct:       decimal.NewFromInt(50),
		AbuseLabelThresholdPct:  decimal.NewFromInt(150),
		FeeThresholdRatio:       decimal.RequireFromString("0.01"),
		MaxDefaultInterestRate:  decimal.RequireFromString("0.01"),
		MaxPenaltyRate:          decimal.RequireFromString("0.02"),
		CapitalizationTolerance: decimal.RequireFromString("0.01"),
		InstallmentTolerance:    decimal.RequireFromString("0.05"),
		RevolvingMonths:         24,
	}
}

// ErrInvalidPolicy is returned by Validate for unusable thresholds.
var ErrInvalidPolicy = errors.New("invalid analysis policy")

// Validate rejects negative thresholds and a non-positive revolving horizon.
func (p Policy) Validate() error {
	for _, d := range []decimal.Decimal{
		p.AbuseThresholdPct,
		p.AbuseLabelThresholdPct,
		p.FeeThresholdRatio,
		p.MaxDefaultInterestRate,
		p.MaxPenaltyRate,
		p.CapitalizationTolerance,
		p.InstallmentTolerance,
	} {
		if d.IsNegative() {
			return ErrInvalidPolicy
		}
	}
	if p.RevolvingMonths <= 0 || p.RevolvingMonths > model.MaxPeriods {
		return ErrInvalidPolicy
	}
	return nil
}
