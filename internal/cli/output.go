package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case RoomList:
		o.printRoomList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Room response type (matches API)
type Room struct {
	ID                 string      `json:"roomId"`
	Title              string      `json:"title"`
	Players            []Player    `json:"players"`
	Board              [15][15]int `json:"board"`
	Turn               int         `json:"turn"`
	BlackPlayer        string      `json:"blackPlayer"`
	Playing            bool        `json:"isPlaying"`
	Ready              int         `json:"ready"`
	TurnTimerStartTime int64       `json:"turnTimerStartTime"`
	TurnLimit          int64       `json:"turnLimit"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// Player response type
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomListing response type
type RoomListing struct {
	ID          string    `json:"roomId"`
	Title       string    `json:"title"`
	PlayerCount int       `json:"playerCount"`
	Playing     bool      `json:"isPlaying"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RoomList response type
type RoomList struct {
	Rooms []RoomListing `json:"rooms"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room:    %s\n", r.ID)
	fmt.Printf("Title:   %s\n", r.Title)
	fmt.Printf("Playing: %v\n", r.Playing)
	if r.Playing {
		fmt.Printf("Turn:    %d\n", r.Turn)
		fmt.Printf("Black:   %s\n", r.BlackPlayer)
	} else {
		fmt.Printf("Ready:   %d/2\n", r.Ready)
	}
	fmt.Println("Players:")
	for _, p := range r.Players {
		fmt.Printf("  %s (%s)\n", p.Name, p.ID)
	}
	fmt.Println()
	o.printBoard(r.Board)
}

// printBoard renders the board with B for black stones (odd turn numbers),
// W for white, and . for empty cells
func (o *Output) printBoard(board [15][15]int) {
	for _, row := range board {
		for _, cell := range row {
			switch {
			case cell == 0:
				fmt.Print(" .")
			case cell%2 == 1:
				fmt.Print(" B")
			default:
				fmt.Print(" W")
			}
		}
		fmt.Println()
	}
}

func (o *Output) printRoomList(list RoomList) {
	if len(list.Rooms) == 0 {
		fmt.Println("No rooms")
		return
	}
	fmt.Printf("%-38s %-20s %-8s %s\n", "ROOM", "TITLE", "PLAYERS", "PLAYING")
	for _, r := range list.Rooms {
		fmt.Printf("%-38s %-20s %-8d %v\n", r.ID, r.Title, r.PlayerCount, r.Playing)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
