package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/domain"
)

func TestParseAddArgs(t *testing.T) {
	e, err := parseAddArgs(" E1 ; Jane Doe ; 5000 ; 0.1 ; 85 ")
	require.NoError(t, err)
	assert.Equal(t, domain.Employee{
		ID:               "E1",
		Name:             "Jane Doe",
		BaseSalary:       5000,
		BonusRate:        0.1,
		PerformanceScore: 85,
	}, e)
}

func TestParseAddArgs_Errors(t *testing.T) {
	cases := map[string]string{
		"too few fields": "E1;Jane;5000",
		"bad salary":     "E1;Jane;много;0.1;85",
		"bad rate":       "E1;Jane;5000;x;85",
		"bad score":      "E1;Jane;5000;0.1;8.5",
		"empty":          "",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseAddArgs(payload)
			assert.Error(t, err)
		})
	}
}

func TestParseAddArgs_RangesLeftToRegistry(t *testing.T) {
	e, err := parseAddArgs("E1;Jane;-5;1.5;85")
	require.NoError(t, err)
	assert.Equal(t, -5.0, e.BaseSalary)
	assert.Equal(t, 1.5, e.BonusRate)
}

func TestFormatEmployees(t *testing.T) {
	assert.Equal(t, "Сотрудники не найдены.", formatEmployees(nil))

	msg := formatEmployees([]domain.Employee{
		{ID: "E1", Name: "Jane", BaseSalary: 5000, BonusRate: 0.1},
		{ID: "E2", Name: "John", BaseSalary: 3000, BonusRate: 0.25},
	})
	assert.Equal(t, "Список сотрудников:\nE1: Jane, оклад 5000.00, премия 10%\nE2: John, оклад 3000.00, премия 25%\n", msg)
}

func TestFormatPayroll(t *testing.T) {
	e := domain.Employee{ID: "E1", Name: "Jane"}

	msg := formatPayroll(e, domain.PayrollResult{GrossSalary: 5000, Bonus: 500, Tax: 1000, NetSalary: 4500}, time.March, 2025)
	assert.Equal(t, "Jane (E1), 03.2025\nНачислено: 5000.00\nПремия: 500.00\nНалог: 1000.00\nК выплате: 4500.00", msg)

	msg = formatPayroll(e, domain.PayrollResult{}, time.March, 2025)
	assert.Equal(t, "Jane (E1), 03.2025: нет данных для расчёта.", msg)
}

func TestWaitingState(t *testing.T) {
	h := &Handler{}
	assert.Equal(t, inputNone, h.takeWaiting(1))

	h.setWaiting(1, inputPayrollID)
	h.setWaiting(2, inputAttendanceID)
	assert.Equal(t, inputPayrollID, h.takeWaiting(1))
	assert.Equal(t, inputNone, h.takeWaiting(1), "taken once")
	h.setWaiting(2, inputNone)
	assert.Equal(t, inputNone, h.takeWaiting(2))
}

func TestFormatAttendance(t *testing.T) {
	e := domain.Employee{ID: "E1", Name: "Jane"}
	date := time.Date(2025, time.November, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Явка Jane за 04.11.2025 отмечена.", formatAttendance(e, date, nil))

	days := []time.Time{
		time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC),
		date,
	}
	assert.Equal(t, "Явка Jane за 04.11.2025 отмечена.\nДней за 11.2025: 2 (03, 04)", formatAttendance(e, date, days))
}

func TestPayrollMessage_LabelsComputedPeriod(t *testing.T) {
	// часы переходят через границу месяца между вызовами
	clock := []time.Time{
		time.Date(2025, time.October, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
	}
	calls := 0
	var asked time.Month
	engine := service.NewPayrollEngine(
		domain.AttendanceFunc(func(_ string, m time.Month, _ int) (int, error) {
			asked = m
			return 22, nil
		}),
		domain.TaxFunc(func(domain.Employee) (float64, bool, error) { return 0.1, true, nil }),
		domain.PerformanceFunc(func(domain.Employee) (int, bool, error) { return 90, true, nil }),
		nil,
	)
	engine.Now = func() time.Time {
		now := clock[calls%len(clock)]
		calls++
		return now
	}

	msg := payrollMessage(engine, domain.Employee{ID: "E1", Name: "Jane", BaseSalary: 22000, BonusRate: 0.2})

	assert.Equal(t, 1, calls)
	assert.Equal(t, time.October, asked)
	assert.Contains(t, msg, "Jane (E1), 10.2025")
	assert.Contains(t, msg, "К выплате: 24200.00")
}
