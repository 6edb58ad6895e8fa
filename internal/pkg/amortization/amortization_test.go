package amortization

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMonthlyPayment_KnownScenario(t *testing.T) {
	// principal=1200.00, 12% annual, 12 months -> monthly rate 0.01,
	// closed-form payment 106.62 after half-up rounding.
	payment, err := MonthlyPayment(dec("1200.00"), dec("12"), dec("12"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := payment.String(); got != "106.62" {
		t.Errorf("expected payment 106.62, got %s", got)
	}
}

func TestMonthlyPayment_Deterministic(t *testing.T) {
	first, err := MonthlyPayment(dec("9999.99"), dec("7.25"), dec("36"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := MonthlyPayment(dec("9999.99"), dec("7.25"), dec("36"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("expected identical results, got %s and %s", first, second)
	}
}

func TestMonthlyPayment_InterestNeverFreeRide(t *testing.T) {
	// With positive interest, n * payment must exceed the principal.
	cases := []struct {
		principal string
		rate      string
		months    string
	}{
		{"1200.00", "12", "12"},
		{"5000.00", "18", "24"},
		{"100000.00", "5", "360"},
		{"750.50", "0.5", "6"},
	}

	for _, tc := range cases {
		payment, err := MonthlyPayment(dec(tc.principal), dec(tc.rate), dec(tc.months))
		if err != nil {
			t.Fatalf("%s/%s/%s: unexpected error: %v", tc.principal, tc.rate, tc.months, err)
		}

		if payment.Sign() <= 0 {
			t.Errorf("%s/%s/%s: expected positive payment, got %s", tc.principal, tc.rate, tc.months, payment)
		}

		total := payment.Mul(dec(tc.months))
		if !total.GreaterThan(dec(tc.principal)) {
			t.Errorf("%s/%s/%s: total repaid %s does not exceed principal", tc.principal, tc.rate, tc.months, total)
		}
	}
}

func TestMonthlyPayment_FractionalDurationTruncates(t *testing.T) {
	whole, err := MonthlyPayment(dec("1200.00"), dec("12"), dec("12"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fractional, err := MonthlyPayment(dec("1200.00"), dec("12"), dec("12.90"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !whole.Equal(fractional) {
		t.Errorf("expected 12.90 months to truncate to 12, got %s vs %s", fractional, whole)
	}
}

func TestMonthlyPayment_ZeroRateIsLinear(t *testing.T) {
	payment, err := MonthlyPayment(dec("1200.00"), dec("0"), dec("12"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := payment.String(); got != "100.00" {
		t.Errorf("expected linear payment 100.00, got %s", got)
	}
}

func TestMonthlyPayment_InvalidDuration(t *testing.T) {
	for _, months := range []string{"0", "-3", "0.99"} {
		_, err := MonthlyPayment(dec("1200.00"), dec("12"), dec(months))
		if !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %s: expected ErrInvalidDuration, got %v", months, err)
		}
	}
}
