package calendar

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/telebot.v3"
)

var ruMonths = map[time.Month]string{
	time.January:   "Январь",
	time.February:  "Февраль",
	time.March:     "Март",
	time.April:     "Апрель",
	time.May:       "Май",
	time.June:      "Июнь",
	time.July:      "Июль",
	time.August:    "Август",
	time.September: "Сентябрь",
	time.October:   "Октябрь",
	time.November:  "Ноябрь",
	time.December:  "Декабрь",
}

// OnDateFunc вызывается, когда пользователь выбрал день.
type OnDateFunc func(date time.Time, c telebot.Context) error

// CalendarController реализует обработку inline-календаря.
// Ожидающие выбора даты хранятся по chat ID.
type CalendarController struct {
	mu      sync.Mutex
	pending map[int64]OnDateFunc
	Now     func() time.Time
}

func NewCalendarController() *CalendarController {
	return &CalendarController{pending: make(map[int64]OnDateFunc), Now: time.Now}
}

// Pick показывает календарь текущего месяца и запоминает, что делать с выбранной датой.
func (cc *CalendarController) Pick(c telebot.Context, onDate OnDateFunc) error {
	cc.mu.Lock()
	cc.pending[c.Chat().ID] = onDate
	cc.mu.Unlock()
	now := cc.Now()
	return SendCalendar(c, now.Year(), int(now.Month()))
}

// SendCalendar строит и отправляет календарь за указанный месяц
func SendCalendar(c telebot.Context, year, month int) error {
	title, markup := BuildCalendar(year, month)
	if c.Callback() != nil {
		return c.Edit(title, markup)
	}
	return c.Send(title, markup)
}

// BuildCalendar inline-клавиатура: дни по 7 в ряд и переключатели месяцев.
func BuildCalendar(year, month int) (string, *telebot.ReplyMarkup) {
	year, month = normalize(year, month)
	markup := &telebot.ReplyMarkup{}
	days := daysInMonth(year, month)
	var rows []telebot.Row
	week := telebot.Row{}
	for d := 1; d <= days; d++ {
		btn := markup.Data(strconv.Itoa(d), "cal_day", strconv.Itoa(d)+"-"+strconv.Itoa(month)+"-"+strconv.Itoa(year))
		week = append(week, btn)
		if len(week) == 7 {
			rows = append(rows, week)
			week = telebot.Row{}
		}
	}
	if len(week) > 0 {
		rows = append(rows, week)
	}
	prev := markup.Data("<", "cal_prev", strconv.Itoa(month-1)+"-"+strconv.Itoa(year))
	next := markup.Data(">", "cal_next", strconv.Itoa(month+1)+"-"+strconv.Itoa(year))
	rows = append(rows, telebot.Row{prev, next})
	markup.Inline(rows...)

	monthName := time.Month(month).String()
	if ru, ok := ruMonths[time.Month(month)]; ok {
		monthName = ru
	}
	return "Выберите дату: " + monthName + " " + strconv.Itoa(year), markup
}

// HandleCallback обрабатывает cal_day / cal_prev / cal_next.
func (cc *CalendarController) HandleCallback(c telebot.Context) error {
	raw := strings.TrimPrefix(c.Data(), "\f")
	split := strings.SplitN(raw, "|", 2)
	if len(split) != 2 {
		return nil
	}
	key, payload := split[0], split[1]
	parts := SplitDateData(payload)

	switch key {
	case "cal_day":
		if len(parts) != 3 {
			return c.Send("Ошибка даты")
		}
		day, _ := strconv.Atoi(parts[0])
		month, _ := strconv.Atoi(parts[1])
		year, _ := strconv.Atoi(parts[2])
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

		cc.mu.Lock()
		onDate, ok := cc.pending[c.Chat().ID]
		delete(cc.pending, c.Chat().ID)
		cc.mu.Unlock()
		if !ok {
			return c.Send("Ошибка даты")
		}
		return onDate(date, c)
	case "cal_prev", "cal_next":
		if len(parts) != 2 {
			return c.Send("Ошибка месяца")
		}
		month, _ := strconv.Atoi(parts[0])
		year, _ := strconv.Atoi(parts[1])
		return SendCalendar(c, year, month)
	}
	return nil
}

// SplitDateData разбивает строку даты на части
func SplitDateData(data string) []string {
	return strings.Split(data, "-")
}

// normalize переносит месяц 0 и 13 на соседний год.
func normalize(year, month int) (int, int) {
	if month < 1 {
		return year - 1, 12
	}
	if month > 12 {
		return year + 1, 1
	}
	return year, month
}

func daysInMonth(year, month int) int {
	t := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return t.Day()
}
