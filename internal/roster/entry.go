// Package roster реализует состояние записи на матч для одного чата:
// кодек записей, поиск участника, учёт занятых мест и операции изменения.
package roster

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxGuests — потолок гостей на одного участника.
const MaxGuests = 5

// guestOnlyMarker — невидимый маркер "гость без хозяина" (zero-width space).
// Он существует только в сериализованной форме записи и не должен
// просачиваться во внутреннюю логику.
const guestOnlyMarker = "​"

// Entry представляет одну запись списка: участник ("хозяин") и его гости.
type Entry struct {
	// HostDisplay — отображаемое имя участника, опционально с "(@username)".
	HostDisplay string
	// HostPresent — занимает ли сам участник место.
	HostPresent bool
	// Guests — количество гостей, 0..MaxGuests.
	Guests int
}

// Valid сообщает, допустима ли запись: хозяин без гостей и без
// собственного места — это пустая запись, её не должно существовать.
func (e Entry) Valid() bool {
	return e.HostPresent || e.Guests > 0
}

var encodedEntryRegex = regexp.MustCompile(`^(.+?) \+([1-5])(\x{200B})?$`)

// EncodeEntry сериализует запись в плоскую строку для хранения:
// "Имя", "Имя +N" или "Имя +N<маркер>" для записи без хозяина.
func EncodeEntry(e Entry) string {
	if e.Guests == 0 {
		return e.HostDisplay
	}
	s := fmt.Sprintf("%s +%d", e.HostDisplay, e.Guests)
	if !e.HostPresent {
		s += guestOnlyMarker
	}
	return s
}

// DecodeEntry разбирает сериализованную строку записи. Строка вне
// грамматики из хранилища не ожидается: в таком случае вся строка
// трактуется как имя участника без гостей.
func DecodeEntry(s string) Entry {
	m := encodedEntryRegex.FindStringSubmatch(s)
	if m == nil {
		return Entry{HostDisplay: strings.TrimSpace(s), HostPresent: true}
	}
	guests := int(m[2][0] - '0')
	return Entry{
		HostDisplay: m[1],
		HostPresent: m[3] == "",
		Guests:      guests,
	}
}
