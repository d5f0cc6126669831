package room

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rolltogether/internal/services/room Service

import "context"

// Service defines the interface for room operations
type Service interface {
	// SubmitSkillRoll rolls a skill pool and adds it to the room's history
	SubmitSkillRoll(ctx context.Context, input *SubmitSkillRollInput) (*SubmitSkillRollOutput, error)

	// SubmitGenericRoll rolls the selected dice and adds them to the room's history
	SubmitGenericRoll(ctx context.Context, input *SubmitGenericRollInput) (*SubmitGenericRollOutput, error)

	// GetRoomHistory returns the room's rolls, newest first
	GetRoomHistory(ctx context.Context, input *GetRoomHistoryInput) (*GetRoomHistoryOutput, error)

	// WatchRoom calls the listener with the room's history on every change
	WatchRoom(ctx context.Context, input *WatchRoomInput) (*WatchRoomOutput, error)

	// ClearRoomHistory empties the room's history for every viewer
	ClearRoomHistory(ctx context.Context, input *ClearRoomHistoryInput) (*ClearRoomHistoryOutput, error)

	// Close stops following every room
	Close() error
}
