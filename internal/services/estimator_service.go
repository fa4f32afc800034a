package services

import (
	"math"
	"strings"
	"time"

	carspace_errors "carspace/pkg/errors"
)

// EstimatorService produces a deterministic valuation for a used car: a
// hard-coded base price per (make, model), straight-line age depreciation,
// tiered mileage deductions and a condition multiplier. There is no model
// being trained here; the output is a pure function of the input.
type EstimatorService struct {
	now func() time.Time
}

func NewEstimatorService() *EstimatorService {
	return &EstimatorService{now: time.Now}
}

type EstimateInput struct {
	Make      string
	Model     string
	Year      int
	Mileage   int
	Condition string // excellent, good, fair, poor
}

type Estimate struct {
	BasePrice      float64 `json:"base_price"`
	AgeDeduction   float64 `json:"age_deduction"`
	MileageFactor  float64 `json:"mileage_factor"`
	ConditionRate  float64 `json:"condition_rate"`
	EstimatedPrice float64 `json:"estimated_price"`
}

// basePrices is the valuation table keyed by "make model", lowercase.
var basePrices = map[string]float64{
	"toyota corolla":      22000,
	"toyota camry":        28000,
	"toyota land cruiser": 85000,
	"honda civic":         24000,
	"honda accord":        29000,
	"nissan altima":       26000,
	"nissan patrol":       70000,
	"hyundai elantra":     21000,
	"hyundai sonata":      25000,
	"kia sportage":        27000,
	"ford mustang":        38000,
	"ford f-150":          42000,
	"chevrolet malibu":    25000,
	"bmw 3 series":        45000,
	"bmw 5 series":        58000,
	"mercedes c-class":    48000,
	"mercedes e-class":    62000,
	"audi a4":             44000,
	"lexus es":            46000,
	"mazda cx-5":          28000,
}

// Yearly depreciation rate and floor as a fraction of base price.
const (
	yearlyDepreciation = 0.08
	valueFloor         = 0.10
)

var conditionRates = map[string]float64{
	"excellent": 1.05,
	"good":      1.00,
	"fair":      0.85,
	"poor":      0.65,
}

func (s *EstimatorService) Estimate(in EstimateInput) (Estimate, error) {
	key := strings.ToLower(strings.TrimSpace(in.Make)) + " " + strings.ToLower(strings.TrimSpace(in.Model))
	base, ok := basePrices[key]
	if !ok {
		return Estimate{}, carspace_errors.ErrUnknownVehicle
	}

	currentYear := s.now().Year()
	if in.Year < 1980 || in.Year > currentYear+1 {
		return Estimate{}, carspace_errors.ErrInvalidInput
	}
	if in.Mileage < 0 {
		return Estimate{}, carspace_errors.ErrInvalidInput
	}

	conditionRate, ok := conditionRates[strings.ToLower(in.Condition)]
	if !ok {
		conditionRate = conditionRates["good"]
	}

	age := currentYear - in.Year
	if age < 0 {
		age = 0
	}
	ageDeduction := base * yearlyDepreciation * float64(age)

	price := (base - ageDeduction) * mileageFactor(in.Mileage) * conditionRate
	floor := base * valueFloor
	if price < floor {
		price = floor
	}

	return Estimate{
		BasePrice:      base,
		AgeDeduction:   ageDeduction,
		MileageFactor:  mileageFactor(in.Mileage),
		ConditionRate:  conditionRate,
		EstimatedPrice: math.Round(price*100) / 100,
	}, nil
}

// mileageFactor applies tiered deductions: nothing under 20k km, then
// progressively steeper discounts.
func mileageFactor(mileage int) float64 {
	switch {
	case mileage < 20_000:
		return 1.00
	case mileage < 60_000:
		return 0.95
	case mileage < 100_000:
		return 0.88
	case mileage < 150_000:
		return 0.78
	case mileage < 200_000:
		return 0.68
	default:
		return 0.55
	}
}
