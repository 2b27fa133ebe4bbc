package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/delivery/telegram/flows"
	"payroll-bot/internal/delivery/telegram/middleware"
	"payroll-bot/internal/delivery/telegram/router"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/logger"
	"payroll-bot/pkg/calendar"
)

// AttendanceJournal отмечает явку и отдаёт отмеченные дни.
type AttendanceJournal interface {
	RecordAttendance(employeeID string, date time.Time) error
	GetAttendance(employeeID string, from, to time.Time) ([]time.Time, error)
}

// pendingInput чего бот ждёт от чата следующим текстовым сообщением.
type pendingInput int

const (
	inputNone pendingInput = iota
	inputPayrollID
	inputAttendanceID
)

type Handler struct {
	Bot           *telebot.Bot
	Registry      *service.EmployeeRegistry
	Payroll       *service.PayrollEngine
	Reports       domain.ReportGenerator
	Attendance    AttendanceJournal
	Calendar      *calendar.CalendarController
	Logger        *zap.Logger
	ReportTimeout time.Duration

	reports *flows.ReportFlow

	mu      sync.Mutex
	waiting map[int64]pendingInput // chatID -> ожидаемый ввод
}

var (
	btnEmployees  = telebot.Btn{Text: "👥 Сотрудники"}
	btnPayroll    = telebot.Btn{Text: "💰 Зарплата"}
	btnReport     = telebot.Btn{Text: "📊 Ведомость"}
	btnAttendance = telebot.Btn{Text: "📅 Отметить явку"}
)

func (h *Handler) Register() {
	h.Logger = logger.OrNop(h.Logger)
	if h.Calendar == nil {
		h.Calendar = calendar.NewCalendarController()
	}

	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/employees", h.handleEmployees)
	h.Bot.Handle("/add", h.handleAdd)
	h.Bot.Handle("/payroll", func(c telebot.Context) error {
		return h.sendPayroll(c, c.Message().Payload)
	})

	r := router.New(h.Logger)
	r.CalDelegate = h.Calendar.HandleCallback
	h.reports = &flows.ReportFlow{Reports: h.Reports, Timeout: h.ReportTimeout, Logger: h.Logger}
	h.reports.Register(r)
	r.Attach(h.Bot)

	h.Bot.Handle(telebot.OnText, h.handleText)
}

func (h *Handler) handleStart(c telebot.Context) error {
	h.setWaiting(c.Chat().ID, inputNone)
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(btnEmployees.Text), markup.Text(btnPayroll.Text)),
		markup.Row(markup.Text(btnReport.Text), markup.Text(btnAttendance.Text)),
	)
	return c.Send("Добро пожаловать! Добавить сотрудника: /add ID;Имя;Оклад;Премия;Оценка", markup)
}

func (h *Handler) handleEmployees(c telebot.Context) error {
	employees, err := h.Registry.GetAllEmployees()
	if err != nil {
		h.Logger.Error("list employees", zap.Error(err))
		return c.Send("Ошибка при получении сотрудников: " + err.Error())
	}
	return c.Send(formatEmployees(employees))
}

func (h *Handler) handleAdd(c telebot.Context) error {
	e, err := parseAddArgs(c.Message().Payload)
	if err != nil {
		return c.Send(err.Error() + "\nФормат: /add ID;Имя;Оклад;Премия;Оценка")
	}
	if err := h.Registry.CreateEmployee(&e); err != nil {
		if domain.IsInvalidArgument(err) {
			return c.Send("Сотрудник не добавлен: " + err.Error())
		}
		h.Logger.Error("create employee", zap.String("employee_id", e.ID), zap.Error(err))
		return c.Send("Ошибка при сохранении сотрудника.")
	}
	return c.Send(fmt.Sprintf("Сотрудник %s (%s) добавлен.", e.Name, e.ID))
}

func (h *Handler) handleText(c telebot.Context) error {
	chatID := c.Chat().ID
	switch c.Text() {
	case btnEmployees.Text:
		h.setWaiting(chatID, inputNone)
		return h.handleEmployees(c)
	case btnPayroll.Text:
		h.setWaiting(chatID, inputPayrollID)
		return c.Send("Введите ID сотрудника:")
	case btnReport.Text:
		h.setWaiting(chatID, inputNone)
		return h.reports.ShowMonths(c, h.reports.Now().Year())
	case btnAttendance.Text:
		h.setWaiting(chatID, inputAttendanceID)
		return c.Send("Чью явку отметить? Введите ID сотрудника:")
	}

	switch h.takeWaiting(chatID) {
	case inputPayrollID:
		return h.sendPayroll(c, c.Text())
	case inputAttendanceID:
		return h.pickAttendance(c, strings.TrimSpace(c.Text()))
	}
	return nil
}

func (h *Handler) sendPayroll(c telebot.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return c.Send("Укажите ID сотрудника: /payroll ID")
	}
	e, found, err := h.Registry.GetEmployeeByID(id)
	if err != nil {
		h.Logger.Error("find employee", zap.String("employee_id", id), zap.Error(err))
		return c.Send("Ошибка при поиске сотрудника.")
	}
	if !found {
		return c.Send("Сотрудник " + id + " не найден.")
	}
	return c.Send(payrollMessage(h.Payroll, e))
}

// payrollMessage считает и подписывает один и тот же период.
func payrollMessage(p *service.PayrollEngine, e domain.Employee) string {
	now := p.Now()
	return formatPayroll(e, p.ProcessPayrollFor(e, now.Month(), now.Year()), now.Month(), now.Year())
}

func (h *Handler) pickAttendance(c telebot.Context, id string) error {
	if h.Attendance == nil {
		return c.Send("Учёт явки недоступен.")
	}
	e, found, err := h.Registry.GetEmployeeByID(id)
	if err != nil {
		h.Logger.Error("find employee", zap.String("employee_id", id), zap.Error(err))
		return c.Send("Ошибка при поиске сотрудника.")
	}
	if !found {
		return c.Send("Сотрудник " + id + " не найден.")
	}
	return h.Calendar.Pick(c, func(date time.Time, c telebot.Context) error {
		if err := h.Attendance.RecordAttendance(e.ID, date); err != nil {
			h.Logger.Error("record attendance", zap.String("employee_id", e.ID), zap.Error(err))
			return middleware.EditOrSend(c, "Ошибка при отметке явки: "+err.Error())
		}
		h.Logger.Info("attendance recorded",
			zap.String("employee_id", e.ID),
			zap.String("date", date.Format("2006-01-02")))

		from := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		days, err := h.Attendance.GetAttendance(e.ID, from, from.AddDate(0, 1, -1))
		if err != nil {
			h.Logger.Warn("list attendance", zap.String("employee_id", e.ID), zap.Error(err))
		}
		return middleware.EditOrSend(c, formatAttendance(e, date, days))
	})
}

// formatAttendance подтверждение отметки и дни, уже отмеченные в этом месяце.
func formatAttendance(e domain.Employee, date time.Time, days []time.Time) string {
	msg := fmt.Sprintf("Явка %s за %s отмечена.", e.Name, date.Format("02.01.2006"))
	if len(days) == 0 {
		return msg
	}
	marks := make([]string, len(days))
	for i, d := range days {
		marks[i] = d.Format("02")
	}
	return fmt.Sprintf("%s\nДней за %02d.%04d: %d (%s)",
		msg, int(date.Month()), date.Year(), len(days), strings.Join(marks, ", "))
}

func (h *Handler) setWaiting(chatID int64, in pendingInput) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.waiting == nil {
		h.waiting = make(map[int64]pendingInput)
	}
	if in == inputNone {
		delete(h.waiting, chatID)
		return
	}
	h.waiting[chatID] = in
}

// takeWaiting возвращает ожидаемый ввод и сбрасывает его.
func (h *Handler) takeWaiting(chatID int64) pendingInput {
	h.mu.Lock()
	defer h.mu.Unlock()
	in := h.waiting[chatID]
	delete(h.waiting, chatID)
	return in
}

// parseAddArgs разбирает "ID;Имя;Оклад;Премия;Оценка". Диапазоны проверяет реестр.
func parseAddArgs(payload string) (domain.Employee, error) {
	parts := strings.Split(payload, ";")
	if len(parts) != 5 {
		return domain.Employee{}, fmt.Errorf("ожидается 5 полей через ';', получено %d", len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	salary, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("некорректный оклад %q", parts[2])
	}
	rate, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("некорректная ставка премии %q", parts[3])
	}
	score, err := strconv.Atoi(parts[4])
	if err != nil {
		return domain.Employee{}, fmt.Errorf("некорректная оценка %q", parts[4])
	}
	return domain.Employee{
		ID:               parts[0],
		Name:             parts[1],
		BaseSalary:       salary,
		BonusRate:        rate,
		PerformanceScore: score,
	}, nil
}

func formatEmployees(employees []domain.Employee) string {
	if len(employees) == 0 {
		return "Сотрудники не найдены."
	}
	var b strings.Builder
	b.WriteString("Список сотрудников:\n")
	for _, e := range employees {
		fmt.Fprintf(&b, "%s: %s, оклад %.2f, премия %.0f%%\n", e.ID, e.Name, e.BaseSalary, e.BonusRate*100)
	}
	return b.String()
}

// formatPayroll нулевой результат означает неполные данные за период.
func formatPayroll(e domain.Employee, r domain.PayrollResult, month time.Month, year int) string {
	if r == (domain.PayrollResult{}) {
		return fmt.Sprintf("%s (%s), %02d.%04d: нет данных для расчёта.", e.Name, e.ID, int(month), year)
	}
	return fmt.Sprintf("%s (%s), %02d.%04d\nНачислено: %.2f\nПремия: %.2f\nНалог: %.2f\nК выплате: %.2f",
		e.Name, e.ID, int(month), year, r.GrossSalary, r.Bonus, r.Tax, r.NetSalary)
}
