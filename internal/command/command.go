// Package command распознаёт короткие текстовые команды участников
// ("+", "-", "+2", "-1" и их эмодзи-варианты) и превращает их в
// типизированную операцию. Распознавание текста полностью отделено от
// машины состояний списка.
package command

import "regexp"

// Kind — вид операции участника.
type Kind int

const (
	// None — текст не является командой списка.
	None Kind = iota
	// Join — записаться ("+").
	Join
	// Leave — выйти из списка ("-").
	Leave
	// AddGuests — привести N гостей ("+N").
	AddGuests
	// RemoveGuests — убрать N гостей ("-N").
	RemoveGuests
)

// Op — разобранная операция участника.
type Op struct {
	Kind Kind
	// N — число гостей для AddGuests и RemoveGuests, иначе 0.
	N int
}

var (
	plusRegex   = regexp.MustCompile(`^\s*(\+|➕)\s*$`)
	minusRegex  = regexp.MustCompile(`^\s*(-|—|–|➖)\s*$`)
	plusNRegex  = regexp.MustCompile(`^\s*(?:\+|➕)\s*([1-5])\s*$`)
	minusNRegex = regexp.MustCompile(`^\s*(?:-|—|–|➖)\s*([1-5])\s*$`)
)

// Parse разбирает текст сообщения. Числовые варианты проверяются до
// одиночных знаков.
func Parse(text string) Op {
	if m := plusNRegex.FindStringSubmatch(text); m != nil {
		return Op{Kind: AddGuests, N: int(m[1][0] - '0')}
	}
	if m := minusNRegex.FindStringSubmatch(text); m != nil {
		return Op{Kind: RemoveGuests, N: int(m[1][0] - '0')}
	}
	if plusRegex.MatchString(text) {
		return Op{Kind: Join}
	}
	if minusRegex.MatchString(text) {
		return Op{Kind: Leave}
	}
	return Op{Kind: None}
}
