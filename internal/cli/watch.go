package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		jsonOutput bool
		playerID   string
		playerName string
	)

	cmd := &cobra.Command{
		Use:   "watch <room-id>",
		Short: "Stream a room's events over websocket",
		Long: `Connect to the room's websocket endpoint and stream events in real-time.

Events include:
  - JOIN / LEAVE: players entering and leaving the room
  - READY / CANCEL: ready-phase changes
  - GAME_START: game initialized, names the black player
  - ACTION: a stone was placed
  - GAME_END: a game finished by win, surrender or timeout
  - ERROR: a rejected move or intent

With --player-id and --player-name the connection also joins the room as
that player before streaming.

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRoom(args[0], playerID, playerName, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().StringVar(&playerID, "player-id", "", "Join as this player before streaming")
	cmd.Flags().StringVar(&playerName, "player-name", "", "Display name when joining")

	return cmd
}

// wireEvent mirrors the server's outbound event schema
type wireEvent struct {
	Sender      string `json:"sender,omitempty"`
	RoomID      string `json:"roomId,omitempty"`
	Type        string `json:"type"`
	Message     string `json:"message,omitempty"`
	Index       *int   `json:"index,omitempty"`
	Turn        *int   `json:"turn,omitempty"`
	BlackPlayer string `json:"blackPlayer,omitempty"`
}

func watchRoom(roomID, playerID, playerName string, jsonOutput bool) error {
	url := client.WebsocketURL(roomID)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = conn.Close() }()

	fmt.Fprintf(os.Stderr, "Connected to %s\n", url)

	if playerID != "" {
		join := map[string]any{
			"type":   "JOIN",
			"roomId": roomID,
			"sender": map[string]string{"id": playerID, "name": playerName},
		}
		if err := conn.WriteJSON(join); err != nil {
			return fmt.Errorf("failed to join: %w", err)
		}
	}

	// Close the connection on Ctrl+C so the read loop unblocks
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "Disconnecting...")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("connection closed: %w", err)
		}

		if jsonOutput {
			fmt.Println(string(data))
			continue
		}

		var ev wireEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			fmt.Println(string(data))
			continue
		}
		printEvent(ev)
	}
}

func printEvent(ev wireEvent) {
	ts := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] %-10s", ts, ev.Type)
	if ev.Sender != "" {
		line += " sender=" + ev.Sender
	}
	if ev.Index != nil {
		line += fmt.Sprintf(" index=%d (row %d, col %d)", *ev.Index, *ev.Index/15, *ev.Index%15)
	}
	if ev.Turn != nil {
		line += fmt.Sprintf(" turn=%d", *ev.Turn)
	}
	if ev.BlackPlayer != "" {
		line += " black=" + ev.BlackPlayer
	}
	if ev.Message != "" {
		line += " " + ev.Message
	}
	fmt.Println(line)
}
