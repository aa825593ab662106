package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisitDuration(t *testing.T) {
	assert.Equal(t, 120*time.Minute, VisitDuration(VisitNewIntake))
	assert.Equal(t, 35*time.Minute, VisitDuration(VisitHomeVisit))
	assert.Equal(t, time.Duration(0), VisitDuration(VisitPhoneContact))
	assert.Equal(t, time.Duration(0), VisitDuration(VisitType("unknown")))
}

func TestWorkBudgetHours(t *testing.T) {
	assert.Equal(t, 7.0, WorkBudgetHours(100))
	assert.Equal(t, 3.5, WorkBudgetHours(50))
	assert.Equal(t, 0.0, WorkBudgetHours(0))

	// Out-of-range fractions clamp instead of producing negative or
	// oversized budgets.
	assert.Equal(t, 7.0, WorkBudgetHours(150))
	assert.Equal(t, 0.0, WorkBudgetHours(-20))
}

func TestWorkBudget(t *testing.T) {
	assert.Equal(t, 7*time.Hour, WorkBudget(100))
	assert.Equal(t, 3*time.Hour+30*time.Minute, WorkBudget(50))
}

func TestClampFraction(t *testing.T) {
	assert.Equal(t, 0, ClampFraction(-1))
	assert.Equal(t, 0, ClampFraction(0))
	assert.Equal(t, 75, ClampFraction(75))
	assert.Equal(t, 100, ClampFraction(100))
	assert.Equal(t, 100, ClampFraction(101))
}
