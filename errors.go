package main

import "errors"

// Action-handler failures. Every handler is all-or-nothing: when one of
// these comes back, no session state was touched.
var (
	ErrSessionFull           = errors.New("session is full")
	ErrSessionNotFound       = errors.New("session not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrNotHost               = errors.New("only the host can do that")
	ErrNotEnoughPlayers      = errors.New("need at least 2 players")
	ErrInvalidPhase          = errors.New("invalid phase transition")
	ErrWrongPhase            = errors.New("not allowed in the current phase")
	ErrPlayerNotAlive        = errors.New("player is not alive")
	ErrAbilityUnknown        = errors.New("ability not granted to player")
	ErrOnCooldown            = errors.New("ability is on cooldown")
	ErrNoUsesRemaining       = errors.New("no uses remaining")
	ErrInvalidTarget         = errors.New("invalid ability target")
	ErrTargetOutOfRange      = errors.New("target is out of range")
	ErrTargetHasNoRole       = errors.New("target has no assigned role")
	ErrInvalidRoomTransition = errors.New("rooms are not connected")
	ErrRoomLocked            = errors.New("the door is locked")
	ErrEmptyMessage          = errors.New("message text is empty")
)

// errorCode buckets an action failure for the wire-level error event.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrPlayerNotFound),
		errors.Is(err, ErrAbilityUnknown):
		return "not_found"
	case errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrInvalidTarget):
		return "validation"
	case errors.Is(err, ErrSessionFull),
		errors.Is(err, ErrNotHost),
		errors.Is(err, ErrNotEnoughPlayers),
		errors.Is(err, ErrInvalidPhase),
		errors.Is(err, ErrWrongPhase),
		errors.Is(err, ErrPlayerNotAlive),
		errors.Is(err, ErrOnCooldown),
		errors.Is(err, ErrNoUsesRemaining),
		errors.Is(err, ErrTargetOutOfRange),
		errors.Is(err, ErrTargetHasNoRole),
		errors.Is(err, ErrInvalidRoomTransition),
		errors.Is(err, ErrRoomLocked):
		return "precondition"
	default:
		return "internal"
	}
}
