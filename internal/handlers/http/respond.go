package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/models"
	macroService "github.com/KirkDiggler/rolltogether/internal/services/macro"
	"github.com/KirkDiggler/rolltogether/internal/services/messaging"
)

// badRequestError is a malformed request body or parameter
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string {
	return e.msg
}

func badRequest(format string, args ...any) error {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

func statusFor(err error) int {
	var badReq *badRequestError
	switch {
	case errors.As(err, &badReq):
		return http.StatusBadRequest
	case errors.Is(err, macroService.ErrMacroNotFound):
		return http.StatusNotFound
	case macroService.IsValidationError(err), errors.Is(err, dice.ErrInvalidDieType):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn().Err(err).Msg("failed to write response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log := zerolog.Ctx(r.Context())

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	h.writeJSON(w, status, errorView{
		Error:     h.errorMessage(r, err),
		RequestID: GetRequestID(r.Context()),
	})
}

func (h *Handler) errorMessage(r *http.Request, err error) string {
	var badReq *badRequestError
	if errors.As(err, &badReq) {
		return badReq.msg
	}

	output, msgErr := h.messagingService.GetErrorMessage(r.Context(), &messaging.GetErrorMessageInput{
		Err: err,
	})
	if msgErr != nil {
		return http.StatusText(statusFor(err))
	}
	return output.Message
}

// submitted builds the response for a new roll
func (h *Handler) submitted(r *http.Request, roll models.Roll, syncErr error) submitView {
	view := submitView{Roll: newRollView(roll)}

	output, err := h.messagingService.GetRollResultMessage(r.Context(), &messaging.GetRollResultMessageInput{
		Roll:  roll,
		Total: view.Roll.Total,
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to build roll message")
	} else {
		view.Message = output.Message
	}

	if syncErr != nil {
		view.SyncWarning = h.errorMessage(r, syncErr)
	}

	return view
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}
