// Package http serves rooms and macros over JSON and live room views over
// WebSocket.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	macroService "github.com/KirkDiggler/rolltogether/internal/services/macro"
	"github.com/KirkDiggler/rolltogether/internal/services/messaging"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxBodyBytes = 1 << 16
)

// Config holds configuration for the HTTP handler
type Config struct {
	RoomService      roomService.Service
	MacroService     macroService.Service
	MessagingService messaging.Service

	// AllowedOrigins applies to CORS and WebSocket upgrades; empty or "*" allows all
	AllowedOrigins []string

	Logger zerolog.Logger
}

// Handler routes the room and macro API
type Handler struct {
	roomService      roomService.Service
	macroService     macroService.Service
	messagingService messaging.Service
	allowedOrigins   []string
	upgrader         websocket.Upgrader
	logger           zerolog.Logger
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RoomService == nil {
		return nil, errors.New("room service cannot be nil")
	}

	if cfg.MacroService == nil {
		return nil, errors.New("macro service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &Handler{
		roomService:      cfg.RoomService,
		macroService:     cfg.MacroService,
		messagingService: cfg.MessagingService,
		allowedOrigins:   origins,
		logger:           cfg.Logger.With().Str("component", "http").Logger(),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h, nil
}

// Routes returns the API wrapped in CORS and request-id middleware
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/rooms/{roomID}", func(r chi.Router) {
		r.Get("/rolls", h.getRoomHistory)
		r.Delete("/rolls", h.clearRoomHistory)
		r.Post("/rolls/skill", h.submitSkillRoll)
		r.Post("/rolls/generic", h.submitGenericRoll)
		r.Get("/ws", h.watchRoom)
	})

	r.Route("/players/{playerID}/macros", func(r chi.Router) {
		r.Get("/", h.listMacros)
		r.Put("/", h.saveMacro)
		r.Delete("/{macroID}", h.deleteMacro)
		r.Post("/{macroID}/execute", h.executeMacro)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return RequestID(h.logger)(c.Handler(r))
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
