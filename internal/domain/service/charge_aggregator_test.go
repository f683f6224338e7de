package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/service"
	"github.com/pCruvinel/octoapps-sub000/pkg/testutil"
)

func TestChargeAggregator_Aggregate(t *testing.T) {
	charges := model.AccessoryCharges{
		UpfrontInsurance:    testutil.D("300"),
		AppraisalFee:        testutil.D("1200"),
		RegistrationFee:     testutil.D("850"),
		TAC:                 testutil.D("500"),
		TEC:                 testutil.D("3"),
		IOF:                 testutil.D("420.37"),
		Miscellaneous:       testutil.D("10"),
		MonthlyInsurance:    testutil.D("45.5"),
		Tariffs:             testutil.D("12"),
		Annuity:             testutil.D("240"),
		DefaultInterestRate: testutil.D("0.01"),
		PenaltyRate:         testutil.D("0.02"),
	}
	agg := service.NewChargeAggregator()

	t.Run("on-time baseline", func(t *testing.T) {
		b := agg.Aggregate(charges, 12, false)
		testutil.AssertDecimalEqual(t, testutil.D("3283.37"), b.Upfront)
		// 45.5 + 12 + 240/12
		testutil.AssertDecimalEqual(t, testutil.D("77.5"), b.RecurringPerPeriod)
		// 57.5*12 + 240
		testutil.AssertDecimalEqual(t, testutil.D("930"), b.RecurringTotal)
		assert.True(t, b.LateRate.IsZero())
		assert.Equal(t, 12, b.Horizon)
	})

	t.Run("late scenario keeps penalty and default interest", func(t *testing.T) {
		b := agg.Aggregate(charges, 12, true)
		testutil.AssertDecimalEqual(t, testutil.D("0.03"), b.LateRate)
	})

	t.Run("annuity credit reduces recurring charges", func(t *testing.T) {
		b := agg.Aggregate(model.AccessoryCharges{Annuity: testutil.D("-120")}, 12, false)
		testutil.AssertDecimalEqual(t, testutil.D("-10"), b.RecurringPerPeriod)
		testutil.AssertDecimalEqual(t, testutil.D("-120"), b.RecurringTotal)
	})

	t.Run("empty charges", func(t *testing.T) {
		b := agg.Aggregate(model.AccessoryCharges{}, 24, true)
		assert.True(t, b.Upfront.IsZero())
		assert.True(t, b.RecurringPerPeriod.IsZero())
		assert.True(t, b.LateRate.IsZero())
	})
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, service.DefaultPolicy().Validate())

	p := service.DefaultPolicy()
	p.RevolvingMonths = 0
	assert.ErrorIs(t, p.Validate(), service.ErrInvalidPolicy)

	p = service.DefaultPolicy()
	p.RevolvingMonths = model.MaxPeriods + 1
	assert.ErrorIs(t, p.Validate(), service.ErrInvalidPolicy)

	p = service.DefaultPolicy()
	p.FeeThresholdRatio = testutil.D("-0.01")
	assert.ErrorIs(t, p.Validate(), service.ErrInvalidPolicy)
}
