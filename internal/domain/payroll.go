package domain

import (
	"math"
	"time"
)

// FullAttendanceDays число рабочих дней, при котором коэффициент явки равен 1.
const FullAttendanceDays = 22.0

// AttendanceService возвращает число дней присутствия за месяц.
type AttendanceService interface {
	DaysPresent(employeeID string, month time.Month, year int) (int, error)
}

// TaxService возвращает ставку налога; ok=false если ставка неизвестна.
type TaxService interface {
	TaxRate(e Employee) (rate float64, ok bool, err error)
}

// PerformanceEvaluator возвращает актуальную оценку эффективности; ok=false если оценки нет.
type PerformanceEvaluator interface {
	EvaluatePerformance(e Employee) (score int, ok bool, err error)
}

type AttendanceFunc func(employeeID string, month time.Month, year int) (int, error)

func (f AttendanceFunc) DaysPresent(employeeID string, month time.Month, year int) (int, error) {
	return f(employeeID, month, year)
}

type TaxFunc func(e Employee) (float64, bool, error)

func (f TaxFunc) TaxRate(e Employee) (float64, bool, error) {
	return f(e)
}

type PerformanceFunc func(e Employee) (int, bool, error)

func (f PerformanceFunc) EvaluatePerformance(e Employee) (int, bool, error) {
	return f(e)
}

// PayrollResult разбивка начислений. NetSalary может быть отрицательной,
// если налог превышает начисления.
type PayrollResult struct {
	GrossSalary float64 `json:"GrossSalary"`
	Bonus       float64 `json:"Bonus"`
	Tax         float64 `json:"Tax"`
	NetSalary   float64 `json:"NetSalary"`
}

// PayrollInputs сигналы, полученные за один расчёт.
type PayrollInputs struct {
	DaysPresent int
	TaxRate     float64
	Performance int
}

type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeInconsistent ставка налога или оценка недоступны.
	OutcomeInconsistent
	// OutcomeFault один из сервисов вернул ошибку или упал.
	OutcomeFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeInconsistent:
		return "inconsistent"
	case OutcomeFault:
		return "fault"
	}
	return "unknown"
}

// Calculation результат одного прогона расчёта.
type Calculation struct {
	Outcome Outcome
	Inputs  PayrollInputs
	Result  PayrollResult
	Err     error
}

// Net возвращает чистую зарплату; ok=false для Inconsistent и Fault.
func (c Calculation) Net() (float64, bool) {
	if c.Outcome != OutcomeOK {
		return 0, false
	}
	return c.Result.NetSalary, true
}

// AttendanceFactor min(1, days/22). Отрицательные значения не обрезаются.
func AttendanceFactor(daysPresent int) float64 {
	return math.Min(1.0, float64(daysPresent)/FullAttendanceDays)
}

// BonusTier ставка премии по оценке эффективности.
func BonusTier(performance int) float64 {
	switch {
	case performance >= 85:
		return 0.20
	case performance >= 70:
		return 0.10
	default:
		return 0.05
	}
}

// Compute считает разбивку для базового оклада и набора сигналов.
func Compute(baseSalary float64, in PayrollInputs) PayrollResult {
	gross := baseSalary * AttendanceFactor(in.DaysPresent)
	bonus := baseSalary * BonusTier(in.Performance)
	tax := baseSalary * in.TaxRate
	return PayrollResult{
		GrossSalary: gross,
		Bonus:       bonus,
		Tax:         tax,
		NetSalary:   gross + bonus - tax,
	}
}
