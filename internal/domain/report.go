package domain

import (
	"context"
	"time"
)

// ReportGenerator асинхронно строит расчётную ведомость за месяц.
// Канал отдаёт ровно одно значение и закрывается.
type ReportGenerator interface {
	GeneratePayrollReport(ctx context.Context, month time.Month, year int) <-chan ReportResult
}

type ReportResult struct {
	Report *PayrollReport
	Err    error
}

type ReportLine struct {
	Employee Employee
	Outcome  Outcome
	Result   PayrollResult
}

type PayrollReport struct {
	ID          string
	Month       time.Month
	Year        int
	GeneratedAt time.Time
	Lines       []ReportLine
}

// TotalNet сумма чистых выплат по строкам с OutcomeOK.
func (r *PayrollReport) TotalNet() float64 {
	var total float64
	for _, l := range r.Lines {
		if l.Outcome == OutcomeOK {
			total += l.Result.NetSalary
		}
	}
	return total
}

func (r *PayrollReport) Inconsistent() int {
	n := 0
	for _, l := range r.Lines {
		if l.Outcome != OutcomeOK {
			n++
		}
	}
	return n
}
