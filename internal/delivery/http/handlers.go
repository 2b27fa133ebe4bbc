package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/domain"
	"payroll-bot/pkg/workerpool"
)

func (s *Server) GetAllEmployees(c *fiber.Ctx) error {
	employees, err := s.Registry.GetAllEmployees()
	if err != nil {
		s.Logger.Error("Failed to fetch employees", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{Error: ErrDatabaseError})
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return c.JSON(APIResponse{Success: true, Data: employees})
}

func (s *Server) AddEmployee(c *fiber.Ctx) error {
	var req domain.Employee
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: ErrInvalidInput})
	}

	if err := s.Registry.CreateEmployee(&req); err != nil {
		if domain.IsInvalidArgument(err) {
			return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: err.Error()})
		}
		s.Logger.Error("Failed to create employee", zap.String("employee_id", req.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{Error: ErrDatabaseError})
	}
	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: req})
}

// lookupEmployee отвечает сам, если сотрудника нет или база недоступна.
func (s *Server) lookupEmployee(c *fiber.Ctx) (domain.Employee, bool, error) {
	id := c.Params("id")
	e, found, err := s.Registry.GetEmployeeByID(id)
	if err != nil {
		s.Logger.Error("Failed to fetch employee", zap.String("employee_id", id), zap.Error(err))
		return e, false, c.Status(fiber.StatusInternalServerError).JSON(APIResponse{Error: ErrDatabaseError})
	}
	if !found {
		return e, false, c.Status(fiber.StatusNotFound).JSON(APIResponse{Error: ErrNotFound})
	}
	return e, true, nil
}

func (s *Server) GetEmployee(c *fiber.Ctx) error {
	e, ok, err := s.lookupEmployee(c)
	if !ok {
		return err
	}
	return c.JSON(APIResponse{Success: true, Data: e})
}

type NetSalaryResponse struct {
	EmployeeID string   `json:"employee_id"`
	Month      int      `json:"month"`
	Year       int      `json:"year"`
	NetSalary  *float64 `json:"net_salary"`
	Consistent bool     `json:"consistent"`
}

func (s *Server) GetNetSalary(c *fiber.Ctx) error {
	e, ok, err := s.lookupEmployee(c)
	if !ok {
		return err
	}

	now := s.Payroll.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: "month must be between 1 and 12"})
	}

	v, err := s.calculate(c, func() (any, error) {
		resp := NetSalaryResponse{EmployeeID: e.ID, Month: month, Year: year}
		if net, ok := s.Payroll.CalculateNetSalary(e, time.Month(month), year); ok {
			resp.NetSalary = &net
			resp.Consistent = true
		}
		return resp, nil
	})
	if err != nil {
		return s.calculationFailed(c, e.ID, err)
	}
	return c.JSON(APIResponse{Success: true, Data: v})
}

func (s *Server) GetPayroll(c *fiber.Ctx) error {
	e, ok, err := s.lookupEmployee(c)
	if !ok {
		return err
	}
	v, err := s.calculate(c, func() (any, error) {
		return s.Payroll.ProcessPayroll(e), nil
	})
	if err != nil {
		return s.calculationFailed(c, e.ID, err)
	}
	return c.JSON(APIResponse{Success: true, Data: v})
}

// calculate выполняет расчёт на пуле, если он есть, иначе прямо в обработчике.
func (s *Server) calculate(c *fiber.Ctx, fn func() (any, error)) (any, error) {
	if s.Async == nil {
		return fn()
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), s.ReportTimeout)
	defer cancel()
	return s.Async.SubmitAsync(ctx, fn)
}

func (s *Server) calculationFailed(c *fiber.Ctx, id string, err error) error {
	s.Logger.Error("Payroll calculation failed", zap.String("employee_id", id), zap.Error(err))
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(APIResponse{Error: "calculation timed out"})
	case errors.Is(err, workerpool.ErrPoolClosed):
		return c.Status(fiber.StatusServiceUnavailable).JSON(APIResponse{Error: "server is shutting down"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{Error: err.Error()})
}

type AttendanceResponse struct {
	EmployeeID string   `json:"employee_id"`
	Month      int      `json:"month"`
	Year       int      `json:"year"`
	Days       []string `json:"days"`
}

func (s *Server) GetAttendance(c *fiber.Ctx) error {
	if s.Attendance == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(APIResponse{Error: "attendance is not tracked"})
	}
	e, ok, err := s.lookupEmployee(c)
	if !ok {
		return err
	}

	now := s.Payroll.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: "month must be between 1 and 12"})
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	dates, err := s.Attendance.GetAttendance(e.ID, from, from.AddDate(0, 1, -1))
	if err != nil {
		s.Logger.Error("Failed to fetch attendance", zap.String("employee_id", e.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{Error: ErrDatabaseError})
	}
	resp := AttendanceResponse{EmployeeID: e.ID, Month: month, Year: year, Days: make([]string, len(dates))}
	for i, d := range dates {
		resp.Days[i] = d.Format("2006-01-02")
	}
	return c.JSON(APIResponse{Success: true, Data: resp})
}

type TaxRateRequest struct {
	Rate float64 `json:"rate"`
}

func (s *Server) SetTaxRate(c *fiber.Ctx) error {
	if s.Taxes == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(APIResponse{Error: "tax rates are read-only"})
	}
	e, ok, err := s.lookupEmployee(c)
	if !ok {
		return err
	}
	var req TaxRateRequest
	if err := c.BodyParser(&req); err != nil || req.Rate < 0 || req.Rate > 1 {
		return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: ErrInvalidInput})
	}
	if err := s.Taxes.SetTaxRate(e.ID, req.Rate); err != nil {
		s.Logger.Error("Failed to set tax rate", zap.String("employee_id", e.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{Error: ErrDatabaseError})
	}
	return c.JSON(APIResponse{Success: true})
}

type PerformanceRequest struct {
	Score int `json:"score"`
}

func (s *Server) SetPerformance(c *fiber.Ctx) error {
	if s.Scores == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(APIResponse{Error: "performance scores are read-only"})
	}
	e, ok, err := s.lookupEmployee(c)
	if !ok {
		return err
	}
	var req PerformanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: ErrInvalidInput})
	}
	if err := s.Scores.SetScore(e.ID, req.Score); err != nil {
		s.Logger.Error("Failed to set performance score", zap.String("employee_id", e.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{Error: ErrDatabaseError})
	}
	return c.JSON(APIResponse{Success: true})
}

type AttendanceRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func (s *Server) RecordAttendance(c *fiber.Ctx) error {
	if s.Attendance == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(APIResponse{Error: "attendance is read-only"})
	}
	e, ok, err := s.lookupEmployee(c)
	if !ok {
		return err
	}
	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: ErrInvalidInput})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: "Invalid date format. Use YYYY-MM-DD"})
	}
	if err := s.Attendance.RecordAttendance(e.ID, date); err != nil {
		s.Logger.Error("Failed to record attendance", zap.String("employee_id", e.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{Error: ErrDatabaseError})
	}
	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true})
}

func (s *Server) GetReport(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: "invalid year"})
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(APIResponse{Error: "invalid month"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.ReportTimeout)
	defer cancel()

	res := <-s.Reports.GeneratePayrollReport(ctx, time.Month(month), year)
	if res.Err != nil {
		if errors.Is(res.Err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(APIResponse{Error: "report generation timed out"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(APIResponse{Error: res.Err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(service.FormatReport(res.Report))
}
