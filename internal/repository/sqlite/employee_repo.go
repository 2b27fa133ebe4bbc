package sqlite

import (
	"database/sql"
	"errors"

	"payroll-bot/internal/domain"
)

type SqliteEmployeeRepo struct {
	db *sql.DB
}

func NewSqliteEmployeeRepo(db *sql.DB) *SqliteEmployeeRepo {
	return &SqliteEmployeeRepo{db: db}
}

// Save вставляет сотрудника; при совпадении id побеждает последняя запись.
func (r *SqliteEmployeeRepo) Save(e domain.Employee) error {
	_, err := r.db.Exec(
		`INSERT INTO employees (id, name, base_salary, bonus_rate, performance_score)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     name = excluded.name,
		     base_salary = excluded.base_salary,
		     bonus_rate = excluded.bonus_rate,
		     performance_score = excluded.performance_score`,
		e.ID, e.Name, e.BaseSalary, e.BonusRate, e.PerformanceScore,
	)
	return err
}

func (r *SqliteEmployeeRepo) FindByID(id string) (domain.Employee, bool, error) {
	var e domain.Employee
	err := r.db.QueryRow(
		`SELECT id, name, base_salary, bonus_rate, performance_score FROM employees WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.BaseSalary, &e.BonusRate, &e.PerformanceScore)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, false, nil
	}
	if err != nil {
		return domain.Employee{}, false, err
	}
	return e, true, nil
}

func (r *SqliteEmployeeRepo) GetAllEmployees() ([]domain.Employee, error) {
	rows, err := r.db.Query(`SELECT id, name, base_salary, bonus_rate, performance_score FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.BaseSalary, &e.BonusRate, &e.PerformanceScore); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
