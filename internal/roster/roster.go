package roster

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Форматы даты и времени матча.
const (
	DateLayout = "02/01/06" // ДД/ММ/ГГ
)

var timeRangeRegex = regexp.MustCompile(`^\d{2}:\d{2}-\d{2}:\d{2}$`)

// Типовые конфликты состояния. Транспортный слой различает их через
// errors.Is, чтобы подобрать ответ пользователю.
var (
	ErrClosed           = &StateConflictError{Reason: "запись закрыта"}
	ErrAlreadyJoined    = &StateConflictError{Reason: "участник уже в списке"}
	ErrGuestOnlyRemains = &StateConflictError{Reason: "участник уже вышел, остались только гости"}
	ErrNoGuests         = &StateConflictError{Reason: "у участника нет гостей"}
)

// Roster — состояние записи на матч для одного чата: метаданные события
// и упорядоченный список записей. Все операции либо применяются целиком
// и возвращают nil, либо оставляют список нетронутым и возвращают ошибку.
// Синхронизацию обеспечивает владелец (store.Store), сам Roster
// потокобезопасным не является.
type Roster struct {
	Open    bool
	Date    string // ДД/ММ/ГГ
	Time    string // ЧЧ:ММ-ЧЧ:ММ
	Venue   string
	Limit   int // 0 — без лимита
	Entries []Entry
}

// Результаты принятых операций: по ним транспортный слой выбирает текст
// подтверждения.
type (
	JoinOutcome   int
	LeaveOutcome  int
	AddOutcome    int
	RemoveOutcome int
)

const (
	// JoinedNew — добавлена новая запись.
	JoinedNew JoinOutcome = iota
	// JoinedRehost — хозяин вернулся в запись, где оставались его гости.
	JoinedRehost
)

const (
	// LeftEntryRemoved — запись без гостей удалена целиком.
	LeftEntryRemoved LeaveOutcome = iota
	// LeftGuestsStay — хозяин вышел, гости сохранили места.
	LeftGuestsStay
)

const (
	// GuestsAddedNewEntry — участника не было, создана запись с гостями.
	GuestsAddedNewEntry AddOutcome = iota
	// GuestsAdded — гости добавлены к существующей записи.
	GuestsAdded
)

const (
	// GuestsReduced — часть гостей убрана, запись сохранилась.
	GuestsReduced RemoveOutcome = iota
	// GuestsCleared — гостей не осталось, хозяин остался один.
	GuestsCleared
	// GuestsEntryRemoved — убраны гости записи без хозяина, запись удалена.
	GuestsEntryRemoved
)

// validateDate проверяет дату формата ДД/ММ/ГГ.
func validateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return &ValidationError{Field: "date", Msg: "неверный формат даты, пример: 21/09/25"}
	}
	return nil
}

// validateTime проверяет интервал формата ЧЧ:ММ-ЧЧ:ММ.
func validateTime(s string) error {
	if !timeRangeRegex.MatchString(s) {
		return &ValidationError{Field: "time", Msg: "неверный формат времени, пример: 20:00-22:00"}
	}
	return nil
}

// OpenSignup открывает запись. Непустые аргументы обновляют дату и время,
// каждый проверяется независимо: недопустимое значение отклоняется и
// возвращается ошибкой, но запись всё равно открывается.
func (r *Roster) OpenSignup(date, timeRange string) error {
	var errs []error
	if date != "" {
		if err := validateDate(date); err != nil {
			errs = append(errs, err)
		} else {
			r.Date = date
		}
	}
	if timeRange != "" {
		if err := validateTime(timeRange); err != nil {
			errs = append(errs, err)
		} else {
			r.Time = timeRange
		}
	}
	r.Open = true
	return errors.Join(errs...)
}

// CloseSignup закрывает запись. Выход и снятие гостей остаются доступными.
func (r *Roster) CloseSignup() {
	r.Open = false
}

// SetDate обновляет дату матча.
func (r *Roster) SetDate(s string) error {
	if err := validateDate(s); err != nil {
		return err
	}
	r.Date = s
	return nil
}

// SetTime обновляет время матча.
func (r *Roster) SetTime(s string) error {
	if err := validateTime(s); err != nil {
		return err
	}
	r.Time = s
	return nil
}

// SetVenue обновляет площадку. Значение свободное, не проверяется.
func (r *Roster) SetVenue(s string) {
	r.Venue = s
}

// SetLimit устанавливает лимит мест из текстового аргумента команды.
// Отрицательные значения приводятся к нулю (без лимита).
func (r *Roster) SetLimit(raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return &ValidationError{Field: "limit", Msg: "лимит должен быть целым числом"}
	}
	if n < 0 {
		n = 0
	}
	r.Limit = n
	return nil
}

// RemoveByKey удаляет все записи, сериализованная форма которых содержит
// key без учёта регистра. Возвращает число удалённых записей.
func (r *Roster) RemoveByKey(key string) int {
	key = strings.ToLower(key)
	kept := r.Entries[:0]
	removed := 0
	for _, e := range r.Entries {
		if strings.Contains(strings.ToLower(EncodeEntry(e)), key) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.Entries = kept
	return removed
}

// Reset очищает список записей. Метаданные события сохраняются.
func (r *Roster) Reset() {
	r.Entries = nil
}

// Join записывает участника. Если у участника осталась запись без хозяина,
// хозяин возвращается на место, гости сохраняются.
func (r *Roster) Join(displayName, username string) (JoinOutcome, error) {
	if !r.Open {
		return 0, ErrClosed
	}
	idx := indexOf(r.Entries, displayName, username)
	if idx != -1 {
		e := r.Entries[idx]
		if e.HostPresent {
			return 0, ErrAlreadyJoined
		}
		if wouldExceed(r.Entries, r.Limit, 1) {
			return 0, &CapacityError{Limit: r.Limit}
		}
		r.Entries[idx].HostPresent = true
		return JoinedRehost, nil
	}
	if wouldExceed(r.Entries, r.Limit, 1) {
		return 0, &CapacityError{Limit: r.Limit}
	}
	r.Entries = append(r.Entries, Entry{HostDisplay: displayName, HostPresent: true})
	return JoinedNew, nil
}

// Leave убирает участника. Если у него есть гости, запись остаётся в
// списке без хозяина, гости сохраняют места.
func (r *Roster) Leave(displayName, username string) (LeaveOutcome, error) {
	idx := indexOf(r.Entries, displayName, username)
	if idx == -1 {
		return 0, &NotFoundError{DisplayName: displayName}
	}
	e := r.Entries[idx]
	if !e.HostPresent {
		return 0, ErrGuestOnlyRemains
	}
	if e.Guests > 0 {
		r.Entries[idx].HostPresent = false
		return LeftGuestsStay, nil
	}
	r.Entries = append(r.Entries[:idx], r.Entries[idx+1:]...)
	return LeftEntryRemoved, nil
}

// AddGuests добавляет участнику n гостей (1..MaxGuests). Отсутствующий
// участник записывается вместе с гостями. Добавление гостей никогда не
// возвращает вышедшего хозяина — это делает только Join.
func (r *Roster) AddGuests(displayName, username string, n int) (AddOutcome, error) {
	if n < 1 || n > MaxGuests {
		return 0, &ValidationError{Field: "guests", Msg: "число гостей должно быть от 1 до 5"}
	}
	if !r.Open {
		return 0, ErrClosed
	}
	idx := indexOf(r.Entries, displayName, username)
	if idx == -1 {
		if wouldExceed(r.Entries, r.Limit, 1+n) {
			return 0, &CapacityError{Limit: r.Limit}
		}
		r.Entries = append(r.Entries, Entry{HostDisplay: displayName, HostPresent: true, Guests: n})
		return GuestsAddedNewEntry, nil
	}
	e := r.Entries[idx]
	if e.Guests+n > MaxGuests {
		return 0, &CapacityError{PerHost: true}
	}
	if wouldExceed(r.Entries, r.Limit, n) {
		return 0, &CapacityError{Limit: r.Limit}
	}
	r.Entries[idx].Guests += n
	return GuestsAdded, nil
}

// RemoveGuests убирает у участника n гостей (1..MaxGuests). Если гостей
// не больше n, их счётчик обнуляется; запись без хозяина при этом
// удаляется целиком.
func (r *Roster) RemoveGuests(displayName, username string, n int) (RemoveOutcome, error) {
	if n < 1 || n > MaxGuests {
		return 0, &ValidationError{Field: "guests", Msg: "число гостей должно быть от 1 до 5"}
	}
	idx := indexOf(r.Entries, displayName, username)
	if idx == -1 {
		return 0, &NotFoundError{DisplayName: displayName}
	}
	e := r.Entries[idx]
	if e.Guests == 0 {
		return 0, ErrNoGuests
	}
	if n >= e.Guests {
		if !e.HostPresent {
			r.Entries = append(r.Entries[:idx], r.Entries[idx+1:]...)
			return GuestsEntryRemoved, nil
		}
		r.Entries[idx].Guests = 0
		return GuestsCleared, nil
	}
	r.Entries[idx].Guests -= n
	return GuestsReduced, nil
}

// TotalOccupied возвращает число занятых мест.
func (r *Roster) TotalOccupied() int {
	return totalOccupied(r.Entries)
}

// Expand возвращает развёрнутый список строк для отображения.
func (r *Roster) Expand() []string {
	return expand(r.Entries)
}

// LimitReached сообщает, достигнут ли лимит мест.
func (r *Roster) LimitReached() bool {
	return r.Limit > 0 && totalOccupied(r.Entries) >= r.Limit
}
