package room

import "errors"

// RoomError is a custom error type for room-related errors
type RoomError string

// Error implements the error interface
func (e RoomError) Error() string {
	return string(e)
}

// Validation errors, returned before any dice are rolled
const (
	ErrRoomIDRequired           RoomError = "room ID is required"
	ErrInvalidDiceCount         RoomError = "dice count must be between 0 and 9"
	ErrInvalidCriticalThreshold RoomError = "critical threshold must be between 1 and 10"
	ErrNoDiceSelected           RoomError = "select at least one die"
	ErrTooManyDice              RoomError = "too many dice selected"
	ErrUnsupportedDieType       RoomError = "unsupported die type"
)

// Construction errors
const (
	ErrNilConfig        RoomError = "config cannot be nil"
	ErrNilChannel       RoomError = "channel cannot be nil"
	ErrNilPlayerRepo    RoomError = "player repository cannot be nil"
	ErrNilDiceRoller    RoomError = "dice roller cannot be nil"
	ErrNilClock         RoomError = "clock cannot be nil"
	ErrNilUUIDGenerator RoomError = "UUID generator cannot be nil"
	ErrServiceClosed    RoomError = "room service is closed"
)

// IsValidationError reports whether err rejects the caller's input
func IsValidationError(err error) bool {
	for _, target := range []RoomError{
		ErrRoomIDRequired, ErrInvalidDiceCount, ErrInvalidCriticalThreshold,
		ErrNoDiceSelected, ErrTooManyDice, ErrUnsupportedDieType,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
