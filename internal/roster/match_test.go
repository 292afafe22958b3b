package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexOf(t *testing.T) {
	entries := []Entry{
		{HostDisplay: "Иван Петров (@ivan)", HostPresent: true},
		{HostDisplay: "Мария", HostPresent: true, Guests: 2},
		{HostDisplay: "Bob (@bobby)", HostPresent: false, Guests: 1},
	}

	t.Run("совпадение по username", func(t *testing.T) {
		assert.Equal(t, 0, indexOf(entries, "другое имя", "ivan"))
		assert.Equal(t, 2, indexOf(entries, "кто угодно", "Bobby"))
	})

	t.Run("совпадение по имени без учёта регистра", func(t *testing.T) {
		assert.Equal(t, 1, indexOf(entries, "мария", ""))
		assert.Equal(t, 1, indexOf(entries, "  МАРИЯ  ", ""))
	})

	t.Run("username авторитетнее совпадения имён", func(t *testing.T) {
		// Тёзка без username не должен попасть в чужую запись.
		twins := []Entry{
			{HostDisplay: "Иван (@first)", HostPresent: true},
			{HostDisplay: "Иван (@second)", HostPresent: true},
		}
		assert.Equal(t, 1, indexOf(twins, "Иван", "second"))
	})

	t.Run("скан идёт по порядку записей", func(t *testing.T) {
		// Первая запись совпадает по имени раньше, чем вторая по username:
		// приоритет username действует внутри одной записи, не по списку.
		mixed := []Entry{
			{HostDisplay: "Олег", HostPresent: true},
			{HostDisplay: "Олег (@oleg)", HostPresent: true},
		}
		assert.Equal(t, 0, indexOf(mixed, "Олег", "oleg"))
	})

	t.Run("участник не найден", func(t *testing.T) {
		assert.Equal(t, -1, indexOf(entries, "Никто", "nobody"))
		assert.Equal(t, -1, indexOf(nil, "Иван", "ivan"))
	})
}
