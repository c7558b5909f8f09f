package service

import (
	"math"
	"testing"
)

func TestCalculateEMI(t *testing.T) {
	result, err := CalculateEMI(100000, 12, 12)
	if err != nil {
		t.Fatalf("CalculateEMI: %v", err)
	}

	approx := func(got, want float64) bool { return math.Abs(got-want) < 0.01 }
	if !approx(result.EMI, 8884.88) {
		t.Fatalf("expected emi ~8884.88, got %v", result.EMI)
	}
	if !approx(result.TotalPayment, 106618.55) {
		t.Fatalf("expected total ~106618.55, got %v", result.TotalPayment)
	}
	if !approx(result.TotalInterest, 6618.55) {
		t.Fatalf("expected interest ~6618.55, got %v", result.TotalInterest)
	}
}

func TestCalculateEMIRejectsNonPositiveInputs(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		months    int
	}{
		{"zero principal", 0, 12, 12},
		{"negative rate", 100000, -1, 12},
		{"zero months", 100000, 12, 0},
	}
	for _, tc := range cases {
		if _, err := CalculateEMI(tc.principal, tc.rate, tc.months); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
