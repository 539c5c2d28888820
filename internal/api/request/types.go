package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Title string `json:"title"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// LeaveRoomRequest is the request body for leaving a room
type LeaveRoomRequest struct {
	PlayerID string `json:"player_id"`
}
