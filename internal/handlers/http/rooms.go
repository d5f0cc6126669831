package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/rolltogether/internal/dice"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

type skillRollRequest struct {
	PlayerID          string `json:"playerId"`
	Nickname          string `json:"nickname"`
	DiceCount         int    `json:"diceCount"`
	Modifier          int    `json:"modifier"`
	CriticalThreshold *int   `json:"criticalThreshold"`
	IsCombatRoll      bool   `json:"isCombatRoll"`
}

type genericRollRequest struct {
	PlayerID     string   `json:"playerId"`
	Nickname     string   `json:"nickname"`
	SelectedDice []string `json:"selectedDice"`

	// Dice is notation such as "2d6 d20", appended to SelectedDice
	Dice     string `json:"dice"`
	Modifier int    `json:"modifier"`
}

func (h *Handler) getRoomHistory(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	output, err := h.roomService.GetRoomHistory(r.Context(), &roomService.GetRoomHistoryInput{
		RoomID: roomID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newRoomView(roomID, output.Rolls))
}

func (h *Handler) submitSkillRoll(w http.ResponseWriter, r *http.Request) {
	var req skillRollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	threshold := roomService.DefaultCriticalThreshold
	if req.CriticalThreshold != nil {
		threshold = *req.CriticalThreshold
	}

	output, err := h.roomService.SubmitSkillRoll(r.Context(), &roomService.SubmitSkillRollInput{
		RoomID: chi.URLParam(r, "roomID"),
		Roller: roomService.Roller{
			PlayerID: req.PlayerID,
			Nickname: req.Nickname,
		},
		DiceCount:         req.DiceCount,
		Modifier:          req.Modifier,
		CriticalThreshold: threshold,
		IsCombatRoll:      req.IsCombatRoll,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, h.submitted(r, output.Roll, output.SyncErr))
}

func (h *Handler) submitGenericRoll(w http.ResponseWriter, r *http.Request) {
	var req genericRollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	selected := req.SelectedDice
	if req.Dice != "" {
		expanded, err := dice.ExpandDiceNotation(req.Dice)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		selected = append(selected, expanded...)
	}

	output, err := h.roomService.SubmitGenericRoll(r.Context(), &roomService.SubmitGenericRollInput{
		RoomID: chi.URLParam(r, "roomID"),
		Roller: roomService.Roller{
			PlayerID: req.PlayerID,
			Nickname: req.Nickname,
		},
		SelectedDice: selected,
		Modifier:     req.Modifier,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, h.submitted(r, output.Roll, output.SyncErr))
}

func (h *Handler) clearRoomHistory(w http.ResponseWriter, r *http.Request) {
	output, err := h.roomService.ClearRoomHistory(r.Context(), &roomService.ClearRoomHistoryInput{
		RoomID: chi.URLParam(r, "roomID"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if output.SyncErr != nil {
		h.writeJSON(w, http.StatusOK, map[string]string{
			"syncWarning": h.errorMessage(r, output.SyncErr),
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
