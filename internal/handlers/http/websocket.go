package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/models"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

// latest holds only the newest pending history; older ones are superseded
type latest chan models.Rolls

func newLatest() latest {
	return make(latest, 1)
}

func (l latest) put(rolls models.Rolls) {
	for {
		select {
		case l <- rolls:
			return
		default:
		}
		select {
		case <-l:
		default:
		}
	}
}

// watchRoom pushes the room's history on connect and after every change
func (h *Handler) watchRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	log := zerolog.Ctx(r.Context()).With().Str("room_id", roomID).Logger()

	pending := newLatest()
	output, err := h.roomService.WatchRoom(r.Context(), &roomService.WatchRoomInput{
		RoomID:   roomID,
		Listener: pending.put,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer output.Unsubscribe()

	// Queue the current history unless a change already arrived
	select {
	case pending <- output.Rolls:
	default:
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log.Info().Msg("room viewer connected")

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			log.Info().Msg("room viewer disconnected")
			return
		case <-r.Context().Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		case rolls := <-pending:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(newRoomView(roomID, rolls)); err != nil {
				log.Debug().Err(err).Msg("failed to push room history")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames so pongs and close frames are processed
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
