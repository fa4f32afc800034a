package services

import (
	"errors"
	"testing"
	"time"

	carspace_errors "carspace/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedEstimator(t *testing.T) *EstimatorService {
	t.Helper()
	svc := NewEstimatorService()
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestEstimateKnownVehicle(t *testing.T) {
	svc := fixedEstimator(t)

	est, err := svc.Estimate(EstimateInput{
		Make:      "Toyota",
		Model:     "Corolla",
		Year:      2024,
		Mileage:   30_000,
		Condition: "good",
	})
	require.NoError(t, err)

	// base 22000, two years of depreciation at 8%, 0.95 mileage tier.
	assert.Equal(t, 22000.0, est.BasePrice)
	assert.Equal(t, 3520.0, est.AgeDeduction)
	assert.Equal(t, 0.95, est.MileageFactor)
	assert.Equal(t, 1.00, est.ConditionRate)
	assert.Equal(t, 17556.0, est.EstimatedPrice)
}

func TestEstimateConditionMultiplier(t *testing.T) {
	svc := fixedEstimator(t)

	est, err := svc.Estimate(EstimateInput{
		Make:      "toyota",
		Model:     "corolla",
		Year:      2024,
		Mileage:   10_000,
		Condition: "excellent",
	})
	require.NoError(t, err)

	assert.Equal(t, 1.00, est.MileageFactor)
	assert.Equal(t, 1.05, est.ConditionRate)
	assert.Equal(t, 19404.0, est.EstimatedPrice)
}

func TestEstimateUnknownConditionDefaultsToGood(t *testing.T) {
	svc := fixedEstimator(t)

	est, err := svc.Estimate(EstimateInput{
		Make:      "Honda",
		Model:     "Civic",
		Year:      2026,
		Mileage:   0,
		Condition: "showroom-fresh",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.00, est.ConditionRate)
	assert.Equal(t, 24000.0, est.EstimatedPrice)
}

func TestEstimateFloorClamp(t *testing.T) {
	svc := fixedEstimator(t)

	est, err := svc.Estimate(EstimateInput{
		Make:      "Toyota",
		Model:     "Corolla",
		Year:      1990,
		Mileage:   250_000,
		Condition: "poor",
	})
	require.NoError(t, err)

	// Age deduction exceeds the base price; the estimate bottoms out at 10%
	// of base.
	assert.Equal(t, 2200.0, est.EstimatedPrice)
}

func TestEstimateUnknownVehicle(t *testing.T) {
	svc := fixedEstimator(t)

	_, err := svc.Estimate(EstimateInput{Make: "Yugo", Model: "45", Year: 2020})
	assert.True(t, errors.Is(err, carspace_errors.ErrUnknownVehicle))
}

func TestEstimateInvalidInput(t *testing.T) {
	svc := fixedEstimator(t)

	_, err := svc.Estimate(EstimateInput{Make: "Toyota", Model: "Corolla", Year: 1950})
	assert.True(t, errors.Is(err, carspace_errors.ErrInvalidInput))

	_, err = svc.Estimate(EstimateInput{Make: "Toyota", Model: "Corolla", Year: 2035})
	assert.True(t, errors.Is(err, carspace_errors.ErrInvalidInput))

	_, err = svc.Estimate(EstimateInput{Make: "Toyota", Model: "Corolla", Year: 2020, Mileage: -1})
	assert.True(t, errors.Is(err, carspace_errors.ErrInvalidInput))
}
