package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/repository/memory"
)

// countingRepo считает обращения к хранилищу.
type countingRepo struct {
	*memory.EmployeeRepo
	finds atomic.Int32
	saves atomic.Int32
	err   error
}

func newCountingRepo() *countingRepo {
	return &countingRepo{EmployeeRepo: memory.NewEmployeeRepo()}
}

func (r *countingRepo) FindByID(id string) (domain.Employee, bool, error) {
	r.finds.Add(1)
	if r.err != nil {
		return domain.Employee{}, false, r.err
	}
	return r.EmployeeRepo.FindByID(id)
}

func (r *countingRepo) Save(e domain.Employee) error {
	r.saves.Add(1)
	return r.EmployeeRepo.Save(e)
}

// lookups заглушки трёх сервисов с подсчётом вызовов.
type lookups struct {
	days    int
	rate    *float64
	score   *int
	err     error
	panicOn string

	attendanceCalls atomic.Int32
	taxCalls        atomic.Int32
	perfCalls       atomic.Int32
}

func ptr[T any](v T) *T { return &v }

func (l *lookups) engine() *PayrollEngine {
	attendance := domain.AttendanceFunc(func(string, time.Month, int) (int, error) {
		l.attendanceCalls.Add(1)
		if l.panicOn == "attendance" {
			panic("attendance service crashed")
		}
		if l.err != nil {
			return 0, l.err
		}
		return l.days, nil
	})
	tax := domain.TaxFunc(func(domain.Employee) (float64, bool, error) {
		l.taxCalls.Add(1)
		if l.rate == nil {
			return 0, false, nil
		}
		return *l.rate, true, nil
	})
	perf := domain.PerformanceFunc(func(domain.Employee) (int, bool, error) {
		l.perfCalls.Add(1)
		if l.score == nil {
			return 0, false, nil
		}
		return *l.score, true, nil
	})
	return NewPayrollEngine(attendance, tax, perf, nil)
}

// tableLookups значения по ID сотрудника.
type tableLookups struct {
	mu     sync.Mutex
	days   map[string]int
	rates  map[string]float64
	scores map[string]int
}

func (t *tableLookups) DaysPresent(id string, _ time.Month, _ int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.days[id], nil
}

func (t *tableLookups) TaxRate(e domain.Employee) (float64, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rates[e.ID]
	return r, ok, nil
}

func (t *tableLookups) EvaluatePerformance(e domain.Employee) (int, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.scores[e.ID]
	return s, ok, nil
}

var errServiceDown = errors.New("service down")
