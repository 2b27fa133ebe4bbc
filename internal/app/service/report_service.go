package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/logger"
	"payroll-bot/pkg/workerpool"
)

// ReportService строит расчётные ведомости на пуле воркеров.
type ReportService struct {
	Employees domain.EmployeeRepo
	Payroll   *PayrollEngine
	Async     *AsyncService
	Logger    *zap.Logger

	NewID func() string
	Now   func() time.Time
}

func NewReportService(employees domain.EmployeeRepo, payroll *PayrollEngine, async *AsyncService, log *zap.Logger) *ReportService {
	return &ReportService{
		Employees: employees,
		Payroll:   payroll,
		Async:     async,
		Logger:    logger.OrNop(log),
		NewID:     uuid.NewString,
		Now:       time.Now,
	}
}

var _ domain.ReportGenerator = (*ReportService)(nil)

// GeneratePayrollReport возвращается сразу; ведомость приходит в канал.
func (s *ReportService) GeneratePayrollReport(ctx context.Context, month time.Month, year int) <-chan domain.ReportResult {
	out := make(chan domain.ReportResult, 1)
	go func() {
		defer close(out)
		report, err := s.build(ctx, month, year)
		if err != nil {
			s.Logger.Error("payroll report failed",
				zap.Int("month", int(month)), zap.Int("year", year), zap.Error(err))
		}
		out <- domain.ReportResult{Report: report, Err: err}
	}()
	return out
}

func (s *ReportService) build(ctx context.Context, month time.Month, year int) (*domain.PayrollReport, error) {
	employees, err := s.Employees.GetAllEmployees()
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	pending := make([]<-chan workerpool.Result, len(employees))
	for i, e := range employees {
		e := e
		pending[i] = s.Async.Go(ctx, func() (any, error) {
			calc := s.Payroll.Calculate(e, month, year)
			return domain.ReportLine{Employee: e, Outcome: calc.Outcome, Result: calc.Result}, nil
		})
	}

	lines := make([]domain.ReportLine, 0, len(employees))
	for _, ch := range pending {
		select {
		case res := <-ch:
			if res.Err != nil {
				return nil, res.Err
			}
			lines = append(lines, res.Value.(domain.ReportLine))
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Employee.ID < lines[j].Employee.ID })

	report := &domain.PayrollReport{
		ID:          s.NewID(),
		Month:       month,
		Year:        year,
		GeneratedAt: s.Now(),
		Lines:       lines,
	}
	s.Logger.Info("payroll report built",
		zap.String("report_id", report.ID),
		zap.Int("employees", len(lines)),
		zap.Int("inconsistent", report.Inconsistent()))
	return report, nil
}

// FormatReport текстовое представление ведомости.
func FormatReport(r *domain.PayrollReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Расчётная ведомость за %02d.%04d\n", int(r.Month), r.Year)
	fmt.Fprintf(&b, "ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Сформирована: %s\n\n", r.GeneratedAt.UTC().Format(time.RFC3339))
	for _, l := range r.Lines {
		if l.Outcome != domain.OutcomeOK {
			fmt.Fprintf(&b, "%s %s: нет данных (%s)\n", l.Employee.ID, l.Employee.Name, l.Outcome)
			continue
		}
		fmt.Fprintf(&b, "%s %s: начислено %.2f, премия %.2f, налог %.2f, к выплате %.2f\n",
			l.Employee.ID, l.Employee.Name,
			l.Result.GrossSalary, l.Result.Bonus, l.Result.Tax, l.Result.NetSalary)
	}
	fmt.Fprintf(&b, "\nСотрудников: %d, без данных: %d\n", len(r.Lines), r.Inconsistent())
	fmt.Fprintf(&b, "Итого к выплате: %.2f\n", r.TotalNet())
	return b.String()
}
