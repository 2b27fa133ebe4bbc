// Package seed загружает начальные данные из YAML.
//
//	employees:
//	  - id: E1
//	    name: Sam
//	    base_salary: 30000
//	    bonus_rate: 0.1
//	    performance_score: 80
//	    tax_rate: 0.13
//	    performance: 90
//	    attendance: ["2025-11-03", "2025-11-04"]
package seed

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"payroll-bot/internal/domain"
)

type File struct {
	Employees []Entry `yaml:"employees"`
}

type Entry struct {
	domain.Employee `yaml:",inline"`

	TaxRate     *float64 `yaml:"tax_rate,omitempty"`
	Performance *int     `yaml:"performance,omitempty"`
	Attendance  []string `yaml:"attendance,omitempty"`
}

func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	return &f, nil
}

type Registry interface {
	CreateEmployee(e *domain.Employee) error
}

type TaxRateWriter interface {
	SetTaxRate(employeeID string, rate float64) error
}

type ScoreWriter interface {
	SetScore(employeeID string, score int) error
}

type AttendanceRecorder interface {
	RecordAttendance(employeeID string, date time.Time) error
}

// Targets куда раскладывать данные. Незаданные писатели пропускаются.
type Targets struct {
	Registry   Registry
	Taxes      TaxRateWriter
	Scores     ScoreWriter
	Attendance AttendanceRecorder
}

// Apply регистрирует сотрудников через реестр, затем пишет ставки, оценки и явки.
// Останавливается на первой ошибке.
func Apply(f *File, t Targets) (int, error) {
	applied := 0
	for _, entry := range f.Employees {
		e := entry.Employee
		if err := t.Registry.CreateEmployee(&e); err != nil {
			return applied, fmt.Errorf("seed: employee %q: %w", e.ID, err)
		}
		if entry.TaxRate != nil && t.Taxes != nil {
			if err := t.Taxes.SetTaxRate(e.ID, *entry.TaxRate); err != nil {
				return applied, fmt.Errorf("seed: tax rate %q: %w", e.ID, err)
			}
		}
		if entry.Performance != nil && t.Scores != nil {
			if err := t.Scores.SetScore(e.ID, *entry.Performance); err != nil {
				return applied, fmt.Errorf("seed: performance %q: %w", e.ID, err)
			}
		}
		if t.Attendance != nil {
			for _, day := range entry.Attendance {
				date, err := time.Parse("2006-01-02", day)
				if err != nil {
					return applied, fmt.Errorf("seed: attendance %q: %w", e.ID, err)
				}
				if err := t.Attendance.RecordAttendance(e.ID, date); err != nil {
					return applied, fmt.Errorf("seed: attendance %q: %w", e.ID, err)
				}
			}
		}
		applied++
	}
	return applied, nil
}
