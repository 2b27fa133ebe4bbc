package sqlite

import (
	"database/sql"
	"errors"

	"payroll-bot/internal/domain"
)

type SqlitePerformanceRepo struct {
	db *sql.DB
}

func NewSqlitePerformanceRepo(db *sql.DB) *SqlitePerformanceRepo {
	return &SqlitePerformanceRepo{db: db}
}

func (r *SqlitePerformanceRepo) SetScore(employeeID string, score int) error {
	_, err := r.db.Exec(
		`INSERT INTO performance_scores (employee_id, score) VALUES (?, ?)
		 ON CONFLICT(employee_id) DO UPDATE SET score = excluded.score`,
		employeeID, score,
	)
	return err
}

func (r *SqlitePerformanceRepo) EvaluatePerformance(e domain.Employee) (int, bool, error) {
	var score int
	err := r.db.QueryRow(`SELECT score FROM performance_scores WHERE employee_id = ?`, e.ID).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}
