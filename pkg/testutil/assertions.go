package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cent is the tolerance used for monetary comparisons.
var Cent = decimal.RequireFromString("0.01")

// RequireNoError fails the test immediately if err is not nil.
func RequireNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// AssertErrorIs checks that err matches target with errors.Is.
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, target), "expected %v to wrap %v", err, target)
}

// AssertDecimalNear checks that |got - want| <= tolerance.
func AssertDecimalNear(t *testing.T, want, got, tolerance decimal.Decimal, msgAndArgs ...interface{}) bool {
	t.Helper()
	diff := got.Sub(want).Abs()
	if diff.GreaterThan(tolerance) {
		return assert.Fail(t, fmt.Sprintf("want %s, got %s (|diff| %s > %s)", want, got, diff, tolerance), msgAndArgs...)
	}
	return true
}

// AssertDecimalEqual checks that got equals want numerically, ignoring scale.
func AssertDecimalEqual(t *testing.T, want, got decimal.Decimal, msgAndArgs ...interface{}) bool {
	t.Helper()
	if !got.Equal(want) {
		return assert.Fail(t, fmt.Sprintf("want %s, got %s", want, got), msgAndArgs...)
	}
	return true
}

// D parses a decimal literal and panics on malformed input.
func D(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
