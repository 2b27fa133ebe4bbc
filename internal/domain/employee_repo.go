package domain

// EmployeeRepo хранилище сотрудников. Реализации должны быть безопасны
// для конкурентного использования.
type EmployeeRepo interface {
	FindByID(id string) (Employee, bool, error)
	Save(e Employee) error
	GetAllEmployees() ([]Employee, error)
}

// Employee неизменяемая запись о сотруднике.
// BonusRate проверяется при регистрации, но в расчёте не участвует:
// премия считается по свежей оценке эффективности.
type Employee struct {
	ID               string  `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	BaseSalary       float64 `json:"base_salary" yaml:"base_salary"`
	BonusRate        float64 `json:"bonus_rate" yaml:"bonus_rate"`
	PerformanceScore int     `json:"performance_score" yaml:"performance_score"`
}
