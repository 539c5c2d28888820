package model

// MessageType identifies the kind of an intent or event
type MessageType string

const (
	TypeJoin      MessageType = "JOIN"
	TypeLeave     MessageType = "LEAVE"
	TypeMove      MessageType = "MOVE"
	TypeAction    MessageType = "ACTION"
	TypeGameStart MessageType = "GAME_START"
	TypeTimeout   MessageType = "TIMEOUT"
	TypeGameEnd   MessageType = "GAME_END"
	TypeError     MessageType = "ERROR"
	TypeReady     MessageType = "READY"
	TypeCancel    MessageType = "CANCEL"
	TypeSurrender MessageType = "SURRENDER"
)

// Intent is an inbound client message addressed to a room. Index is present
// only for moves and encodes the cell as row*15 + col.
type Intent struct {
	Sender Player      `json:"sender"`
	RoomID RoomID      `json:"roomId"`
	Type   MessageType `json:"type"`
	Index  *int        `json:"index,omitempty"`
}

// Event is an outbound broadcast to a room topic. Every field except Type is
// optional and omitted from the wire form when unset.
type Event struct {
	Sender      PlayerID    `json:"sender,omitempty"`
	RoomID      RoomID      `json:"roomId,omitempty"`
	Type        MessageType `json:"type"`
	Message     string      `json:"message,omitempty"`
	Index       *int        `json:"index,omitempty"`
	Turn        *int        `json:"turn,omitempty"`
	BlackPlayer PlayerID    `json:"blackPlayer,omitempty"`
}
