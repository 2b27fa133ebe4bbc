package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"payroll-bot/internal/domain"
	"payroll-bot/internal/logger"
)

// EmployeeRegistry пропускает в хранилище только корректных и уникальных сотрудников.
//
// Проверка существования и запись не атомарны: две одновременные регистрации
// одного id могут обе пройти проверку, тогда побеждает последняя запись,
// если хранилище само не сериализует доступ по ключу.
type EmployeeRegistry struct {
	Repo   domain.EmployeeRepo
	Logger *zap.Logger
}

func NewEmployeeRegistry(repo domain.EmployeeRepo, log *zap.Logger) *EmployeeRegistry {
	return &EmployeeRegistry{Repo: repo, Logger: logger.OrNop(log)}
}

// CreateEmployee проверяет сотрудника и сохраняет его. Любая ошибка валидации
// оборачивает domain.ErrInvalidArgument; в этом случае хранилище не меняется.
func (s *EmployeeRegistry) CreateEmployee(e *domain.Employee) error {
	if err := validateEmployee(e); err != nil {
		return err
	}

	_, exists, err := s.Repo.FindByID(e.ID)
	if err != nil {
		return fmt.Errorf("lookup employee %s: %w", e.ID, err)
	}
	if exists {
		return domain.InvalidArgument("employee with ID %s already exists", e.ID)
	}

	if err := s.Repo.Save(*e); err != nil {
		return fmt.Errorf("save employee %s: %w", e.ID, err)
	}
	s.Logger.Info("employee registered", zap.String("employee_id", e.ID))
	return nil
}

func validateEmployee(e *domain.Employee) error {
	if e == nil {
		return domain.InvalidArgument("employee cannot be nil")
	}
	if strings.TrimSpace(e.ID) == "" {
		return domain.InvalidArgument("employee ID cannot be null or empty")
	}
	if strings.TrimSpace(e.Name) == "" {
		return domain.InvalidArgument("employee name cannot be null or empty")
	}
	// отрицание ловит и NaN
	if !(e.BaseSalary >= 0) {
		return domain.InvalidArgument("base salary cannot be negative")
	}
	if !(e.BonusRate >= 0 && e.BonusRate <= 1.0) {
		return domain.InvalidArgument("bonus rate must be between 0 and 1.0")
	}
	return nil
}

func (s *EmployeeRegistry) GetEmployeeByID(id string) (domain.Employee, bool, error) {
	return s.Repo.FindByID(id)
}

func (s *EmployeeRegistry) GetAllEmployees() ([]domain.Employee, error) {
	return s.Repo.GetAllEmployees()
}
