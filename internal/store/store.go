// Package store владеет коллекцией списков всех чатов и её сохранением
// на диск. Это единственная граница ввода-вывода ядра: загрузка при
// старте и полная перезапись файла после каждой принятой операции.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"football-roster-bot/internal/roster"
)

// Defaults — значения метаданных для впервые упомянутого чата.
type Defaults struct {
	Time  string
	Venue string
}

// chatState — сериализованное состояние одного чата. Записи хранятся в
// плоской строковой форме кодека и обязаны проходить через него без потерь.
type chatState struct {
	Open  bool     `json:"open"`
	Date  string   `json:"date"`
	Time  string   `json:"time"`
	Field string   `json:"field"`
	Limit int      `json:"limit"`
	Users []string `json:"users"`
}

// Store — потокобезопасное хранилище списков, ключ — идентификатор чата.
// Один мьютекс сериализует цепочку "найти участника → проверить лимит →
// изменить → сохранить" целиком, поэтому две конкурентные команды не
// могут пройти проверку лимита по устаревшему состоянию.
type Store struct {
	mu       sync.Mutex
	path     string
	defaults Defaults
	chats    map[int64]*roster.Roster

	now func() time.Time // подменяется в тестах
}

// New создает Store, сохраняющий состояние в файл path.
func New(path string, defaults Defaults) *Store {
	return &Store{
		path:     path,
		defaults: defaults,
		chats:    make(map[int64]*roster.Roster),
		now:      time.Now,
	}
}

// Load читает состояние из файла. Отсутствие файла не ошибка — хранилище
// стартует пустым. Повреждённый файл — фатальная ошибка запуска,
// автоматического восстановления нет.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("не удалось прочитать файл состояния %s: %w", s.path, err)
	}

	var raw map[string]chatState
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("файл состояния %s повреждён: %w", s.path, err)
	}

	for key, cs := range raw {
		chatID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("файл состояния %s повреждён: недопустимый ключ чата %q", s.path, key)
		}
		entries := make([]roster.Entry, 0, len(cs.Users))
		for _, u := range cs.Users {
			entries = append(entries, roster.DecodeEntry(u))
		}
		s.chats[chatID] = &roster.Roster{
			Open:    cs.Open,
			Date:    cs.Date,
			Time:    cs.Time,
			Venue:   cs.Field,
			Limit:   cs.Limit,
			Entries: entries,
		}
	}
	return nil
}

// getLocked возвращает список чата, при первом обращении создавая его
// с настройками по умолчанию. Вызывается только под мьютексом.
func (s *Store) getLocked(chatID int64) *roster.Roster {
	r, ok := s.chats[chatID]
	if !ok {
		r = &roster.Roster{
			Date:  s.now().Format(roster.DateLayout),
			Time:  s.defaults.Time,
			Venue: s.defaults.Venue,
		}
		s.chats[chatID] = r
	}
	return r
}

// Update выполняет fn над списком чата под мьютексом хранилища и, если
// fn вернула nil, сохраняет всю коллекцию на диск. При ошибке fn
// состояние не сохраняется: отклонённые операции обязаны оставлять
// список нетронутым.
func (s *Store) Update(chatID int64, fn func(r *roster.Roster) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.getLocked(chatID)); err != nil {
		return err
	}
	return s.persistLocked()
}

// View выполняет fn над списком чата без сохранения на диск.
func (s *Store) View(chatID int64, fn func(r *roster.Roster)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.getLocked(chatID))
}

// persistLocked перезаписывает файл состояния целиком. Запись атомарна:
// сначала во временный файл с уникальным суффиксом, затем переименование,
// чтобы сбой посреди записи не оставил усечённый файл.
func (s *Store) persistLocked() error {
	out := make(map[string]chatState, len(s.chats))
	for chatID, r := range s.chats {
		users := make([]string, 0, len(r.Entries))
		for _, e := range r.Entries {
			users = append(users, roster.EncodeEntry(e))
		}
		out[strconv.FormatInt(chatID, 10)] = chatState{
			Open:  r.Open,
			Date:  r.Date,
			Time:  r.Time,
			Field: r.Venue,
			Limit: r.Limit,
			Users: users,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать состояние: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("не удалось записать файл состояния: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось заменить файл состояния: %w", err)
	}
	return nil
}

// ChatIDs возвращает отсортированные идентификаторы известных чатов.
func (s *Store) ChatIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.chats))
	for id := range s.chats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Snapshot — снимок состояния чата для read-only интерфейсов.
type Snapshot struct {
	Open         bool     `json:"open"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Venue        string   `json:"venue"`
	Limit        int      `json:"limit"`
	Total        int      `json:"total"`
	LimitReached bool     `json:"limit_reached"`
	Participants []string `json:"participants"`
}

// Snapshot возвращает снимок чата. Для неизвестного чата возвращает
// false и ничего не создаёт: снимки не считаются первым обращением.
func (s *Store) Snapshot(chatID int64) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.chats[chatID]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{
		Open:         r.Open,
		Date:         r.Date,
		Time:         r.Time,
		Venue:        r.Venue,
		Limit:        r.Limit,
		Total:        r.TotalOccupied(),
		LimitReached: r.LimitReached(),
		Participants: r.Expand(),
	}, true
}
