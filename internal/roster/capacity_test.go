package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalOccupied(t *testing.T) {
	assert.Equal(t, 0, totalOccupied(nil))

	entries := []Entry{
		{HostDisplay: "Alice (@a)", HostPresent: true},
		{HostDisplay: "Bob", HostPresent: true, Guests: 2},
		{HostDisplay: "Carol", HostPresent: false, Guests: 3},
	}
	// 1 + (1+2) + 3
	assert.Equal(t, 7, totalOccupied(entries))
}

func TestExpand(t *testing.T) {
	t.Run("гости всегда отдельными строками", func(t *testing.T) {
		entries := []Entry{
			{HostDisplay: "Alice (@a)", HostPresent: true},
			{HostDisplay: "Bob", HostPresent: true, Guests: 2},
		}
		expected := []string{"Alice (@a)", "Bob", "Bob +1", "Bob +1"}
		assert.Equal(t, expected, expand(entries))
		// Число строк всегда равно числу занятых мест.
		assert.Equal(t, totalOccupied(entries), len(expand(entries)))
	})

	t.Run("запись без хозяина даёт только гостевые строки", func(t *testing.T) {
		entries := []Entry{{HostDisplay: "Bob", HostPresent: false, Guests: 2}}
		assert.Equal(t, []string{"Bob +1", "Bob +1"}, expand(entries))
	})

	t.Run("пустой список", func(t *testing.T) {
		assert.Empty(t, expand(nil))
	})
}

func TestWouldExceed(t *testing.T) {
	entries := []Entry{{HostDisplay: "Bob", HostPresent: true, Guests: 1}} // 2 места

	t.Run("нулевой лимит не ограничивает", func(t *testing.T) {
		assert.False(t, wouldExceed(entries, 0, 100))
	})

	t.Run("добавление впритык к лимиту допустимо", func(t *testing.T) {
		assert.False(t, wouldExceed(entries, 3, 1))
	})

	t.Run("превышение лимита", func(t *testing.T) {
		assert.True(t, wouldExceed(entries, 3, 2))
	})
}
