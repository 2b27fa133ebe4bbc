package keyboards

import (
	"fmt"
	"strconv"

	"gopkg.in/telebot.v3"
)

var monthNames = []string{"Янв", "Фев", "Мар", "Апр", "Май", "Июн", "Июл", "Авг", "Сен", "Окт", "Ноя", "Дек"}

// BuildMonthKeyboard выбор месяца для ведомости: 4 ряда по 3 месяца и
// переключатели года. Payload кнопки месяца — "YYYY-MM".
func BuildMonthKeyboard(year int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, 5)
	for i := 0; i < 12; i += 3 {
		row := make(telebot.Row, 0, 3)
		for j := i; j < i+3; j++ {
			row = append(row, markup.Data(monthNames[j], "pick_month", fmt.Sprintf("%04d-%02d", year, j+1)))
		}
		rows = append(rows, row)
	}

	prev := markup.Data("← "+strconv.Itoa(year-1), "month_prev", strconv.Itoa(year))
	next := markup.Data(strconv.Itoa(year+1)+" →", "month_next", strconv.Itoa(year))
	rows = append(rows, markup.Row(prev, next))

	markup.Inline(rows...)
	return fmt.Sprintf("Ведомость: выберите месяц %d", year), markup
}
