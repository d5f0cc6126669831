package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rolltogether/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRollResultMessage returns a headline and flavour line for a roll
	GetRollResultMessage(ctx context.Context, input *GetRollResultMessageInput) (*GetRollResultMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
