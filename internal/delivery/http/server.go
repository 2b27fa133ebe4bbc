// Package http JSON API поверх реестра и расчёта зарплаты.
package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/logger"
)

type TaxRateWriter interface {
	SetTaxRate(employeeID string, rate float64) error
}

type ScoreWriter interface {
	SetScore(employeeID string, score int) error
}

type AttendanceJournal interface {
	RecordAttendance(employeeID string, date time.Time) error
	GetAttendance(employeeID string, from, to time.Time) ([]time.Time, error)
}

// Server зависимости обработчиков. Writers опциональны: без них
// соответствующие маршруты отвечают 501.
type Server struct {
	Registry   *service.EmployeeRegistry
	Payroll    *service.PayrollEngine
	Reports    domain.ReportGenerator
	Taxes      TaxRateWriter
	Scores     ScoreWriter
	Attendance AttendanceJournal
	// Async если задан, расчёты идут на пуле воркеров с ReportTimeout.
	Async         *service.AsyncService
	JWTSecret     string
	ReportTimeout time.Duration
	Logger        *zap.Logger
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

const (
	ErrInvalidInput  = "Invalid input"
	ErrDatabaseError = "Database error"
	ErrNotFound      = "Employee not found"
)

// NewApp собирает fiber-приложение со всеми маршрутами.
func (s *Server) NewApp() *fiber.App {
	s.Logger = logger.OrNop(s.Logger)
	if s.ReportTimeout <= 0 {
		s.ReportTimeout = 30 * time.Second
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	hr := s.RequireHR

	app.Get("/employees", s.GetAllEmployees)
	app.Post("/employees", hr, s.AddEmployee)
	app.Get("/employees/:id", s.GetEmployee)
	app.Get("/employees/:id/net", s.GetNetSalary)
	app.Get("/employees/:id/payroll", s.GetPayroll)
	app.Put("/employees/:id/tax-rate", hr, s.SetTaxRate)
	app.Put("/employees/:id/performance", hr, s.SetPerformance)
	app.Get("/employees/:id/attendance", s.GetAttendance)
	app.Post("/employees/:id/attendance", hr, s.RecordAttendance)
	app.Get("/reports/:year/:month", s.GetReport)

	return app
}
