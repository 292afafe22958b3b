package roster

import "fmt"

// ValidationError — недопустимый формат даты, времени или числа.
// Состояние списка не меняется.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// CapacityError — операция превысила бы лимит мест в чате либо потолок
// гостей на одного участника. Состояние списка не меняется.
type CapacityError struct {
	// Limit — действующий лимит чата; 0, если превышен потолок гостей.
	Limit int
	// PerHost — true, если превышен потолок гостей (MaxGuests).
	PerHost bool
}

func (e *CapacityError) Error() string {
	if e.PerHost {
		return fmt.Sprintf("превышен потолок гостей (максимум %d)", MaxGuests)
	}
	return fmt.Sprintf("нет свободных мест (лимит %d)", e.Limit)
}

// StateConflictError — операция не имеет смысла в текущем состоянии
// (повторная запись, запись закрыта, повторный выход при оставшихся
// гостях). Сообщается как no-op без изменения состояния.
type StateConflictError struct {
	Reason string
}

func (e *StateConflictError) Error() string {
	return e.Reason
}

// NotFoundError — участник отсутствует там, где требуется его присутствие.
type NotFoundError struct {
	DisplayName string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("участник %q не найден в списке", e.DisplayName)
}
