package sqlite

import (
	"database/sql"
	"fmt"
)

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    base_salary REAL NOT NULL,
    bonus_rate REAL NOT NULL,
    performance_score INTEGER NOT NULL DEFAULT 0
);
`

const createAttendanceTable = `
CREATE TABLE IF NOT EXISTS attendance (
    employee_id TEXT NOT NULL,
    date TEXT NOT NULL,
    PRIMARY KEY (employee_id, date)
);
`

const createTaxRatesTable = `
CREATE TABLE IF NOT EXISTS tax_rates (
    employee_id TEXT PRIMARY KEY,
    rate REAL NOT NULL
);
`

const createPerformanceScoresTable = `
CREATE TABLE IF NOT EXISTS performance_scores (
    employee_id TEXT PRIMARY KEY,
    score INTEGER NOT NULL
);
`

func Migrate(db *sql.DB) error {
	for _, stmt := range []string{
		createEmployeesTable,
		createAttendanceTable,
		createTaxRatesTable,
		createPerformanceScoresTable,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
