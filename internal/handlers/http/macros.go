package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/rolltogether/internal/models"
	macroService "github.com/KirkDiggler/rolltogether/internal/services/macro"
)

type saveMacroRequest struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	MacroType models.MacroType     `json:"macroType"`
	Skill     *models.SkillMacro   `json:"skill"`
	Generic   *models.GenericMacro `json:"generic"`
}

type executeMacroRequest struct {
	RoomID   string `json:"roomId"`
	Nickname string `json:"nickname"`
}

type macrosView struct {
	Macros []*models.Macro `json:"macros"`
}

type executeView struct {
	Macro *models.Macro `json:"macro"`
	submitView
}

func (h *Handler) listMacros(w http.ResponseWriter, r *http.Request) {
	output, err := h.macroService.ListMacros(r.Context(), &macroService.ListMacrosInput{
		OwnerID: chi.URLParam(r, "playerID"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	macros := output.Macros
	if macros == nil {
		macros = []*models.Macro{}
	}

	h.writeJSON(w, http.StatusOK, macrosView{Macros: macros})
}

func (h *Handler) saveMacro(w http.ResponseWriter, r *http.Request) {
	var req saveMacroRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.macroService.SaveMacro(r.Context(), &macroService.SaveMacroInput{
		OwnerID:   chi.URLParam(r, "playerID"),
		MacroID:   req.ID,
		Name:      req.Name,
		MacroType: req.MacroType,
		Skill:     req.Skill,
		Generic:   req.Generic,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, output.Macro)
}

func (h *Handler) deleteMacro(w http.ResponseWriter, r *http.Request) {
	err := h.macroService.DeleteMacro(r.Context(), &macroService.DeleteMacroInput{
		OwnerID: chi.URLParam(r, "playerID"),
		MacroID: chi.URLParam(r, "macroID"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) executeMacro(w http.ResponseWriter, r *http.Request) {
	var req executeMacroRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.macroService.ExecuteMacro(r.Context(), &macroService.ExecuteMacroInput{
		OwnerID:  chi.URLParam(r, "playerID"),
		MacroID:  chi.URLParam(r, "macroID"),
		RoomID:   req.RoomID,
		Nickname: req.Nickname,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var view submitView
	switch {
	case output.Skill != nil:
		view = h.submitted(r, output.Skill.Roll, output.Skill.SyncErr)
	case output.Generic != nil:
		view = h.submitted(r, output.Generic.Roll, output.Generic.SyncErr)
	}

	h.writeJSON(w, http.StatusCreated, executeView{Macro: output.Macro, submitView: view})
}
