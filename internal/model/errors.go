package model

import "errors"

// Common errors used across the application
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
	ErrNotInRoom    = errors.New("player is not in room")
)
