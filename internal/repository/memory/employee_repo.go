// Package memory хранилище сотрудников в памяти процесса.
package memory

import (
	"sort"
	"sync"

	"payroll-bot/internal/domain"
)

type EmployeeRepo struct {
	mu        sync.RWMutex
	employees map[string]domain.Employee
}

func NewEmployeeRepo() *EmployeeRepo {
	return &EmployeeRepo{employees: make(map[string]domain.Employee)}
}

func (r *EmployeeRepo) FindByID(id string) (domain.Employee, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[id]
	return e, ok, nil
}

func (r *EmployeeRepo) Save(e domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[e.ID] = e
	return nil
}

// GetAllEmployees отсортированы по ID.
func (r *EmployeeRepo) GetAllEmployees() ([]domain.Employee, error) {
	r.mu.RLock()
	out := make([]domain.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, e)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
