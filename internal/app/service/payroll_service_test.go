package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-bot/internal/domain"
)

func TestCalculateNetSalary_Scenarios(t *testing.T) {
	cases := []struct {
		name  string
		base  float64
		days  int
		score int
		rate  float64
		want  float64
	}{
		{"full attendance high performance", 22000, 22, 90, 0.1, 24200},
		{"half attendance low performance", 22000, 11, 60, 0.1, 22000*0.5 + 22000*0.05 - 22000*0.1},
		{"zero tax", 10000, 22, 90, 0.0, 12000},
		{"high tax", 10000, 22, 90, 0.5, 7000},
		{"middle tier", 20000, 22, 80, 0.1, 20000},
		{"attendance capped", 22000, 30, 90, 0.1, 24200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := &lookups{days: tc.days, rate: ptr(tc.rate), score: ptr(tc.score)}
			e := domain.Employee{ID: "E1", Name: "Alice", BaseSalary: tc.base}

			net, ok := l.engine().CalculateNetSalary(e, time.November, 2025)
			require.True(t, ok)
			assert.InDelta(t, tc.want, net, 1e-4)
		})
	}
}

func TestCalculate_BonusTierBoundaries(t *testing.T) {
	for score, tier := range map[int]float64{90: 0.20, 85: 0.20, 84: 0.10, 75: 0.10, 70: 0.10, 69: 0.05, 40: 0.05} {
		l := &lookups{days: 22, rate: ptr(0.0), score: ptr(score)}
		calc := l.engine().Calculate(domain.Employee{ID: "E1", BaseSalary: 1000}, time.January, 2025)
		require.Equal(t, domain.OutcomeOK, calc.Outcome)
		assert.InDelta(t, 1000*tier, calc.Result.Bonus, 1e-9, "score=%d", score)
	}
}

func TestCalculate_ZeroAttendance(t *testing.T) {
	l := &lookups{days: 0, rate: ptr(0.0), score: ptr(100)}
	calc := l.engine().Calculate(domain.Employee{ID: "E3", BaseSalary: 22000}, time.March, 2025)
	require.Equal(t, domain.OutcomeOK, calc.Outcome)
	assert.Equal(t, 0.0, calc.Result.GrossSalary)
	assert.GreaterOrEqual(t, calc.Result.NetSalary, 0.0)
}

func TestCalculate_NegativeAttendancePassesThrough(t *testing.T) {
	l := &lookups{days: -11, rate: ptr(0.0), score: ptr(40)}
	calc := l.engine().Calculate(domain.Employee{ID: "E1", BaseSalary: 22000}, time.March, 2025)
	require.Equal(t, domain.OutcomeOK, calc.Outcome)
	assert.InDelta(t, -11000.0, calc.Result.GrossSalary, 1e-9)
}

func TestCalculate_MissingSignalsAreInconsistent(t *testing.T) {
	e := domain.Employee{ID: "A1", BaseSalary: 15000}
	for _, days := range []int{0, 22, 40} {
		noTax := &lookups{days: days, score: ptr(90)}
		calc := noTax.engine().Calculate(e, time.November, 2025)
		assert.Equal(t, domain.OutcomeInconsistent, calc.Outcome)
		assert.ErrorIs(t, calc.Err, domain.ErrTaxRateUnavailable)

		noScore := &lookups{days: days, rate: ptr(0.1)}
		calc = noScore.engine().Calculate(e, time.November, 2025)
		assert.Equal(t, domain.OutcomeInconsistent, calc.Outcome)
		assert.ErrorIs(t, calc.Err, domain.ErrPerformanceUnavailable)

		_, ok := noScore.engine().CalculateNetSalary(e, time.November, 2025)
		assert.False(t, ok)
	}
}

func TestCalculate_LookupFailuresAreFaults(t *testing.T) {
	e := domain.Employee{ID: "F1", BaseSalary: 15000}

	failing := &lookups{err: errServiceDown, rate: ptr(0.1), score: ptr(90)}
	calc := failing.engine().Calculate(e, time.November, 2025)
	assert.Equal(t, domain.OutcomeFault, calc.Outcome)
	assert.ErrorIs(t, calc.Err, errServiceDown)
	_, ok := failing.engine().CalculateNetSalary(e, time.November, 2025)
	assert.False(t, ok)

	panicking := &lookups{panicOn: "attendance", rate: ptr(0.1), score: ptr(90)}
	calc = panicking.engine().Calculate(e, time.November, 2025)
	assert.Equal(t, domain.OutcomeFault, calc.Outcome)
	assert.Contains(t, calc.Err.Error(), "crashed")
	assert.NotPanics(t, func() { panicking.engine().ProcessPayroll(e) })
}

func TestProcessPayroll_UsesCurrentPeriodAndFetchesOnce(t *testing.T) {
	var gotMonth time.Month
	var gotYear int
	var calls int
	attendance := domain.AttendanceFunc(func(_ string, m time.Month, y int) (int, error) {
		calls++
		gotMonth, gotYear = m, y
		return 22, nil
	})
	l := &lookups{rate: ptr(0.1), score: ptr(90)}
	engine := l.engine()
	engine.Attendance = attendance
	engine.Now = func() time.Time { return time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC) }

	res := engine.ProcessPayroll(domain.Employee{ID: "E1", BaseSalary: 22000})
	assert.Equal(t, time.November, gotMonth)
	assert.Equal(t, 2025, gotYear)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int32(1), l.taxCalls.Load())
	assert.Equal(t, int32(1), l.perfCalls.Load())

	assert.InDelta(t, 22000.0, res.GrossSalary, 1e-6)
	assert.InDelta(t, 4400.0, res.Bonus, 1e-6)
	assert.InDelta(t, 2200.0, res.Tax, 1e-6)
	assert.InDelta(t, 24200.0, res.NetSalary, 1e-6)
	assert.InDelta(t, res.GrossSalary+res.Bonus-res.Tax, res.NetSalary, 1e-9)
}

func TestProcessPayroll_InconsistentYieldsZeros(t *testing.T) {
	l := &lookups{days: 22, score: ptr(90)}
	res := l.engine().ProcessPayroll(domain.Employee{ID: "A1", BaseSalary: 15000})
	assert.Equal(t, domain.PayrollResult{}, res)

	f := &lookups{err: errServiceDown}
	res = f.engine().ProcessPayroll(domain.Employee{ID: "A1", BaseSalary: 15000})
	assert.Equal(t, domain.PayrollResult{}, res)
}
