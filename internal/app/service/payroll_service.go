package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/logger"
)

// PayrollEngine считает начисления по трём внешним сигналам и окладу.
// Состояния не хранит, безопасен для конкурентных вызовов, если безопасны
// сами сервисы.
type PayrollEngine struct {
	Attendance  domain.AttendanceService
	Tax         domain.TaxService
	Performance domain.PerformanceEvaluator
	Logger      *zap.Logger

	// Now источник текущего периода для ProcessPayroll.
	Now func() time.Time
}

func NewPayrollEngine(
	attendance domain.AttendanceService,
	tax domain.TaxService,
	performance domain.PerformanceEvaluator,
	log *zap.Logger,
) *PayrollEngine {
	return &PayrollEngine{
		Attendance:  attendance,
		Tax:         tax,
		Performance: performance,
		Logger:      logger.OrNop(log),
		Now:         time.Now,
	}
}

// Calculate выполняет один расчёт. Ошибки и паники сервисов не пробрасываются,
// а превращаются в OutcomeFault.
func (p *PayrollEngine) Calculate(e domain.Employee, month time.Month, year int) (calc domain.Calculation) {
	log := p.Logger.With(
		zap.String("employee_id", e.ID),
		zap.Int("month", int(month)),
		zap.Int("year", year),
	)
	defer func() {
		if r := recover(); r != nil {
			calc = domain.Calculation{Outcome: domain.OutcomeFault, Err: fmt.Errorf("lookup panicked: %v", r)}
			log.Error("payroll calculation failed", zap.Error(calc.Err))
		}
	}()

	inputs, missing, err := p.fetch(e, month, year)
	if err != nil {
		log.Error("payroll calculation failed", zap.Error(err))
		return domain.Calculation{Outcome: domain.OutcomeFault, Inputs: inputs, Err: err}
	}
	if missing != nil {
		log.Warn("payroll data inconsistent", zap.Error(missing))
		return domain.Calculation{Outcome: domain.OutcomeInconsistent, Inputs: inputs, Err: missing}
	}

	return domain.Calculation{
		Outcome: domain.OutcomeOK,
		Inputs:  inputs,
		Result:  domain.Compute(e.BaseSalary, inputs),
	}
}

// fetch опрашивает все три сервиса ровно по одному разу. missing сообщает,
// какого сигнала не хватило; err ошибку самого сервиса.
func (p *PayrollEngine) fetch(e domain.Employee, month time.Month, year int) (in domain.PayrollInputs, missing error, err error) {
	if in.DaysPresent, err = p.Attendance.DaysPresent(e.ID, month, year); err != nil {
		return in, nil, fmt.Errorf("attendance lookup: %w", err)
	}

	rate, hasRate, err := p.Tax.TaxRate(e)
	if err != nil {
		return in, nil, fmt.Errorf("tax lookup: %w", err)
	}
	in.TaxRate = rate

	score, hasScore, err := p.Performance.EvaluatePerformance(e)
	if err != nil {
		return in, nil, fmt.Errorf("performance lookup: %w", err)
	}
	in.Performance = score

	switch {
	case !hasRate:
		missing = domain.ErrTaxRateUnavailable
	case !hasScore:
		missing = domain.ErrPerformanceUnavailable
	}
	return in, missing, nil
}

// CalculateNetSalary чистая зарплата за период; ok=false если данные
// неполны или сервис упал. Причины снаружи не различаются.
func (p *PayrollEngine) CalculateNetSalary(e domain.Employee, month time.Month, year int) (float64, bool) {
	return p.Calculate(e, month, year).Net()
}

// ProcessPayroll расчёт за текущий месяц. Никогда не падает: при неполных
// данных все поля нулевые.
func (p *PayrollEngine) ProcessPayroll(e domain.Employee) domain.PayrollResult {
	now := p.Now()
	return p.ProcessPayrollFor(e, now.Month(), now.Year())
}

func (p *PayrollEngine) ProcessPayrollFor(e domain.Employee, month time.Month, year int) domain.PayrollResult {
	calc := p.Calculate(e, month, year)
	if calc.Outcome != domain.OutcomeOK {
		return domain.PayrollResult{}
	}
	return calc.Result
}
