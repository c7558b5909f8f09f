package service

import (
	"math"

	apperrors "github.com/spec-kit/loan-platform/pkg/util"
)

// EMIResult holds the amortizing-loan breakdown.
type EMIResult struct {
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

// CalculateEMI computes the equated monthly installment:
// emi = P*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate.
func CalculateEMI(principal, annualRate float64, months int) (*EMIResult, error) {
	if principal <= 0 || annualRate <= 0 || months <= 0 {
		return nil, apperrors.NewValidationError("principal, annual_rate and months must be positive", nil)
	}

	monthly := annualRate / 12 / 100
	factor := math.Pow(1+monthly, float64(months))
	emi := principal * monthly * factor / (factor - 1)
	total := emi * float64(months)

	return &EMIResult{
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: total - principal,
	}, nil
}
