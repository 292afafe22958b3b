package roster

import "fmt"

// totalOccupied возвращает суммарное число занятых мест:
// по одному на присутствующего хозяина плюс по одному на каждого гостя.
func totalOccupied(entries []Entry) int {
	total := 0
	for _, e := range entries {
		if e.HostPresent {
			total++
		}
		total += e.Guests
	}
	return total
}

// expand разворачивает записи в строки для отображения: хозяин — одной
// строкой, каждый гость — отдельной строкой "Имя +1". Запись без хозяина
// даёт только гостевые строки.
func expand(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.HostPresent {
			out = append(out, e.HostDisplay)
		}
		for i := 0; i < e.Guests; i++ {
			out = append(out, fmt.Sprintf("%s +1", e.HostDisplay))
		}
	}
	return out
}

// wouldExceed сообщает, превысит ли лимит добавление added мест.
// Нулевой лимит означает отсутствие ограничения.
func wouldExceed(entries []Entry, limit, added int) bool {
	return limit > 0 && totalOccupied(entries)+added > limit
}
