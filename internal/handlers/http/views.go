package http

import (
	"github.com/KirkDiggler/rolltogether/internal/models"
	"github.com/KirkDiggler/rolltogether/internal/score"
	"github.com/KirkDiggler/rolltogether/internal/services/messaging"
)

// rollView is a roll record with its derived display values
type rollView struct {
	Roll     models.Roll `json:"roll"`
	Total    int         `json:"total"`
	Headline string      `json:"headline"`

	// Skill rolls
	ContributingIndices []int `json:"contributingIndices,omitempty"`

	// Generic rolls
	RequestSummary string `json:"requestSummary,omitempty"`
	ResultSummary  string `json:"resultSummary,omitempty"`
}

func newRollView(roll models.Roll) rollView {
	switch r := roll.(type) {
	case *models.SkillRoll:
		total := score.CalculateSkillTotal(r)
		return rollView{
			Roll:                r,
			Total:               total.Total,
			Headline:            messaging.Headline(r),
			ContributingIndices: total.ContributingIndices,
		}
	case *models.GenericRoll:
		total := score.CalculateGenericTotal(r)
		return rollView{
			Roll:           r,
			Total:          total.Total,
			Headline:       messaging.HeadlineGenericRoll,
			RequestSummary: total.RequestSummary(),
			ResultSummary:  total.ResultSummary(),
		}
	}
	return rollView{Roll: roll}
}

// roomView is the full history of a room, newest first
type roomView struct {
	RoomID string     `json:"roomId"`
	Rolls  []rollView `json:"rolls"`
}

func newRoomView(roomID string, rolls models.Rolls) roomView {
	views := make([]rollView, 0, len(rolls))
	for _, roll := range rolls {
		views = append(views, newRollView(roll))
	}
	return roomView{RoomID: roomID, Rolls: views}
}

// submitView is returned for every new roll
type submitView struct {
	Roll    rollView `json:"roll"`
	Message string   `json:"message,omitempty"`

	// SyncWarning is set when the roll was recorded but not shared
	SyncWarning string `json:"syncWarning,omitempty"`
}

type errorView struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}
