package sqlite

import (
	"database/sql"
	"errors"

	"payroll-bot/internal/domain"
)

type SqliteTaxRateRepo struct {
	db *sql.DB
}

func NewSqliteTaxRateRepo(db *sql.DB) *SqliteTaxRateRepo {
	return &SqliteTaxRateRepo{db: db}
}

func (r *SqliteTaxRateRepo) SetTaxRate(employeeID string, rate float64) error {
	_, err := r.db.Exec(
		`INSERT INTO tax_rates (employee_id, rate) VALUES (?, ?)
		 ON CONFLICT(employee_id) DO UPDATE SET rate = excluded.rate`,
		employeeID, rate,
	)
	return err
}

// TaxRate ok=false если ставка для сотрудника не задана.
func (r *SqliteTaxRateRepo) TaxRate(e domain.Employee) (float64, bool, error) {
	var rate float64
	err := r.db.QueryRow(`SELECT rate FROM tax_rates WHERE employee_id = ?`, e.ID).Scan(&rate)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return rate, true, nil
}
