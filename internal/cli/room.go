package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomListCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"title": args[0]}

			var result Room
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomList
			if err := client.Get("/api/v1/rooms", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <room-id>",
		Short: "Get room details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var playerID, playerName string

	cmd := &cobra.Command{
		Use:   "join <room-id>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_id":   playerID,
				"player_name": playerName,
			}

			var result Room
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player id")
	cmd.Flags().StringVar(&playerName, "player-name", "", "Player display name")
	_ = cmd.MarkFlagRequired("player-id")
	_ = cmd.MarkFlagRequired("player-name")

	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "leave <room-id>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": playerID}

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/leave", args[0]), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left room")
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player-id", "", "Player id")
	_ = cmd.MarkFlagRequired("player-id")

	return cmd
}
