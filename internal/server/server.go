// Package server предоставляет read-only HTTP API со статусом списков:
// проверку работоспособности и снимки состояния чатов. API ничего не
// изменяет — все мутации идут только через Telegram-команды.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"football-roster-bot/cmd/bot/config"
	"football-roster-bot/internal/store"
)

// Server представляет HTTP-сервер статуса.
type Server struct {
	httpServer *http.Server
	store      *store.Store
}

// New создает новый экземпляр Server.
func New(cfg *config.Config, st *store.Store) *Server {
	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.Logger)
	chiRouter.Use(middleware.Recoverer)

	chiRouter.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	chiRouter.Route("/api/v1", func(r chi.Router) {
		// Список известных чатов
		r.Get("/chats", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string][]int64{"chats": st.ChatIDs()})
		})

		// Снимок списка одного чата
		r.Get("/chats/{chatID}", func(w http.ResponseWriter, r *http.Request) {
			chatID, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
			if err != nil {
				http.Error(w, "недопустимый идентификатор чата", http.StatusBadRequest)
				return
			}
			snap, ok := st.Snapshot(chatID)
			if !ok {
				http.Error(w, "чат не найден", http.StatusNotFound)
				return
			}
			writeJSON(w, http.StatusOK, snap)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Address(),
			Handler: chiRouter,
		},
		store: st,
	}
}

// ListenAndServe запускает HTTP-сервер.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown корректно останавливает HTTP-сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler возвращает HTTP-обработчик сервера. Используется в тестах.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
