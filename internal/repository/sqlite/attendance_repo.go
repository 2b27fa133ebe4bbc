package sqlite

import (
	"database/sql"
	"time"
)

const dateLayout = "2006-01-02"

// SqliteAttendanceRepo журнал явок: одна строка на день присутствия.
type SqliteAttendanceRepo struct {
	db *sql.DB
}

func NewSqliteAttendanceRepo(db *sql.DB) *SqliteAttendanceRepo {
	return &SqliteAttendanceRepo{db: db}
}

// RecordAttendance отмечает явку; повторная отметка того же дня ничего не меняет.
func (r *SqliteAttendanceRepo) RecordAttendance(employeeID string, date time.Time) error {
	_, err := r.db.Exec(
		`INSERT OR IGNORE INTO attendance (employee_id, date) VALUES (?, ?)`,
		employeeID,
		date.Format(dateLayout),
	)
	return err
}

func (r *SqliteAttendanceRepo) DaysPresent(employeeID string, month time.Month, year int) (int, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	var days int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM attendance WHERE employee_id = ? AND date BETWEEN ? AND ?`,
		employeeID,
		from.Format(dateLayout),
		to.Format(dateLayout),
	).Scan(&days)
	return days, err
}

// GetAttendance дни присутствия за период, по возрастанию.
func (r *SqliteAttendanceRepo) GetAttendance(employeeID string, from, to time.Time) ([]time.Time, error) {
	rows, err := r.db.Query(
		`SELECT date FROM attendance WHERE employee_id = ? AND date BETWEEN ? AND ? ORDER BY date`,
		employeeID,
		from.Format(dateLayout),
		to.Format(dateLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, err
		}
		d, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
