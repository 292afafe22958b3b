package roster

import (
	"fmt"
	"strings"
	"time"
)

// weekdayRU — названия дней недели для заголовка списка.
var weekdayRU = map[time.Weekday]string{
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
	time.Sunday:    "Воскресенье",
}

// Header возвращает шапку события: дата с днём недели, площадка, время.
func (r *Roster) Header() string {
	weekday := "?"
	if d, err := time.Parse(DateLayout, r.Date); err == nil {
		weekday = weekdayRU[d.Weekday()]
	}
	return fmt.Sprintf("📅 %s (%s)\n🏟️ Поле: %s\n⏰ Время: %s", r.Date, weekday, r.Venue, r.Time)
}

// Render собирает полное текстовое представление списка: шапка, статус
// записи, счётчик мест, предупреждение о лимите и нумерованный
// развёрнутый список (или заглушка, если список пуст).
func (r *Roster) Render() string {
	expanded := expand(r.Entries)
	count := len(expanded)

	var body string
	if count == 0 {
		body = "Пока пусто. Пиши '+' чтобы записаться."
	} else {
		var sb strings.Builder
		for i, line := range expanded {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%d. %s", i+1, line)
		}
		body = sb.String()
	}

	status := "Закрыто ⛔️"
	if r.Open {
		status = "Открыто ✅"
	}

	limitNote := ""
	if r.LimitReached() {
		limitNote = fmt.Sprintf("\n\n⚠️ Достигнут лимит (%d).", r.Limit)
	}

	return fmt.Sprintf("%s\n\nСтатус: %s\nУчастников: %d%s\n\n%s", r.Header(), status, count, limitNote, body)
}
