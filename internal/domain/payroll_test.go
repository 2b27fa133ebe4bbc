package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceFactor(t *testing.T) {
	cases := []struct {
		days int
		want float64
	}{
		{22, 1.0},
		{11, 0.5},
		{0, 0.0},
		{30, 1.0},
		{-11, -0.5},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, AttendanceFactor(tc.days), 1e-9, "days=%d", tc.days)
	}
}

func TestBonusTier(t *testing.T) {
	cases := []struct {
		score int
		want  float64
	}{
		{100, 0.20},
		{90, 0.20},
		{85, 0.20},
		{84, 0.10},
		{75, 0.10},
		{70, 0.10},
		{69, 0.05},
		{40, 0.05},
		{0, 0.05},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BonusTier(tc.score), "score=%d", tc.score)
	}
}

func TestCompute(t *testing.T) {
	t.Run("full attendance top tier", func(t *testing.T) {
		r := Compute(22000, PayrollInputs{DaysPresent: 22, TaxRate: 0.1, Performance: 90})
		assert.InDelta(t, 22000.0, r.GrossSalary, 1e-6)
		assert.InDelta(t, 4400.0, r.Bonus, 1e-6)
		assert.InDelta(t, 2200.0, r.Tax, 1e-6)
		assert.InDelta(t, 24200.0, r.NetSalary, 1e-6)
	})

	t.Run("half attendance low tier", func(t *testing.T) {
		r := Compute(22000, PayrollInputs{DaysPresent: 11, TaxRate: 0.1, Performance: 60})
		assert.InDelta(t, 11000.0, r.GrossSalary, 1e-6)
		assert.InDelta(t, 1100.0, r.Bonus, 1e-6)
		assert.InDelta(t, 2200.0, r.Tax, 1e-6)
		assert.InDelta(t, 22000*0.5+22000*0.05-22000*0.1, r.NetSalary, 1e-6)
	})

	t.Run("tax above earnings goes negative", func(t *testing.T) {
		r := Compute(1000, PayrollInputs{DaysPresent: 0, TaxRate: 0.9, Performance: 10})
		assert.InDelta(t, 0.0, r.GrossSalary, 1e-9)
		assert.Less(t, r.NetSalary, 0.0)
	})
}

func TestCalculationNet(t *testing.T) {
	ok := Calculation{Outcome: OutcomeOK, Result: PayrollResult{NetSalary: 10}}
	net, found := ok.Net()
	assert.True(t, found)
	assert.Equal(t, 10.0, net)

	bad := Calculation{Outcome: OutcomeInconsistent, Err: ErrTaxRateUnavailable}
	_, found = bad.Net()
	assert.False(t, found)
	assert.Equal(t, "inconsistent", bad.Outcome.String())
}

func TestInvalidArgument(t *testing.T) {
	err := InvalidArgument("employee with ID %s already exists", "E1")
	assert.True(t, IsInvalidArgument(err))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "E1 already exists")
	assert.False(t, IsInvalidArgument(errors.New("disk full")))
}

func TestPayrollReportTotals(t *testing.T) {
	r := &PayrollReport{Lines: []ReportLine{
		{Outcome: OutcomeOK, Result: PayrollResult{NetSalary: 100}},
		{Outcome: OutcomeInconsistent},
		{Outcome: OutcomeOK, Result: PayrollResult{NetSalary: 50.5}},
	}}
	assert.InDelta(t, 150.5, r.TotalNet(), 1e-9)
	assert.Equal(t, 1, r.Inconsistent())
}
