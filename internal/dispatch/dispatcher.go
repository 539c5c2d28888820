// Package dispatch turns inbound client intents into room state transitions
// and outbound broadcasts. Intents for different rooms run concurrently;
// intents for the same room serialize on the registry's per-room lock.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/scoula/omok-server/internal/dependencies/clock"
	"github.com/scoula/omok-server/internal/dependencies/random"
	"github.com/scoula/omok-server/internal/engine"
	"github.com/scoula/omok-server/internal/model"
	"github.com/scoula/omok-server/internal/registry"
)

// Publisher delivers an event to every subscriber of a room's topic.
// Delivery is fire-and-forget. RemoveTopic releases whatever the publisher
// holds for a room once that room is destroyed.
type Publisher interface {
	Publish(roomID model.RoomID, event model.Event)
	RemoveTopic(roomID model.RoomID)
}

// Rule violations reported back to the room as ERROR events
var (
	errRoomNotPlaying = errors.New("game is not in progress")
	errCellOccupied   = errors.New("cell is already occupied")
	errForbiddenMove  = errors.New("forbidden move")
)

// Dropped silently: the room is in the wrong phase for the intent
var errWrongPhase = errors.New("intent does not apply in the current phase")

// Dispatcher validates intents against room state and the rule engine,
// applies the resulting transitions and broadcasts the outcome.
type Dispatcher struct {
	registry  *registry.Registry
	publisher Publisher
	sessions  *SessionBinder
	scheduler *StartScheduler
	clock     clock.Clock
	random    random.Random
	turnLimit time.Duration
	logger    *slog.Logger
}

// New creates a Dispatcher. startDelay is how long the deferred game-start
// broadcast waits after both players ready up; turnLimit is the per-turn
// time budget stamped onto each started game.
func New(
	reg *registry.Registry,
	publisher Publisher,
	clk clock.Clock,
	rnd random.Random,
	startDelay time.Duration,
	turnLimit time.Duration,
	logger *slog.Logger,
) *Dispatcher {
	d := &Dispatcher{
		registry:  reg,
		publisher: publisher,
		sessions:  NewSessionBinder(),
		clock:     clk,
		random:    rnd,
		turnLimit: turnLimit,
		logger:    logger.With(slog.String("component", "dispatch")),
	}
	d.scheduler = NewStartScheduler(startDelay, d.startGame)
	return d
}

// Shutdown disarms all pending deferred starts
func (d *Dispatcher) Shutdown() {
	d.scheduler.Shutdown()
}

// HandleIntent routes one inbound intent. Intents with an unrecognized type
// are dropped without a broadcast.
func (d *Dispatcher) HandleIntent(ctx context.Context, sessionID string, intent model.Intent) {
	switch intent.Type {
	case model.TypeJoin:
		d.handleJoin(ctx, sessionID, intent)
	case model.TypeReady:
		d.handleReady(intent)
	case model.TypeCancel:
		d.handleCancel(intent)
	case model.TypeSurrender:
		d.handleGameOver(ctx, intent, fmt.Sprintf("%s surrendered", intent.Sender.Name))
	case model.TypeTimeout:
		d.handleGameOver(ctx, intent, fmt.Sprintf("%s ran out of time", intent.Sender.Name))
	case model.TypeMove, model.TypeAction:
		d.handleMove(ctx, intent)
	case model.TypeLeave:
		d.handleLeave(ctx, sessionID, intent)
	default:
		d.logger.Warn("dropping intent with unrecognized type",
			slog.String("type", string(intent.Type)),
			slog.String("room_id", string(intent.RoomID)),
		)
	}
}

// HandleDisconnect reconciles a dropped transport session into a leave.
// Idempotent: a session already reconciled (or never bound) is a no-op.
func (d *Dispatcher) HandleDisconnect(ctx context.Context, sessionID string) {
	roomID, playerID, ok := d.sessions.Unbind(sessionID)
	if !ok {
		return
	}
	d.logger.Info("reconciling disconnected session",
		slog.String("session_id", sessionID),
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(playerID)),
	)
	d.Leave(ctx, roomID, playerID)
}

func (d *Dispatcher) handleJoin(ctx context.Context, sessionID string, intent model.Intent) {
	if !d.registry.JoinRoom(ctx, intent.RoomID, intent.Sender) {
		d.publishError(intent, "could not join room")
		return
	}
	d.sessions.Bind(sessionID, intent.RoomID, intent.Sender.ID)
	d.publisher.Publish(intent.RoomID, model.Event{
		Type:    model.TypeJoin,
		Sender:  intent.Sender.ID,
		RoomID:  intent.RoomID,
		Message: intent.Sender.Name,
	})
}

func (d *Dispatcher) handleReady(intent model.Intent) {
	var full bool
	err := d.registry.WithRoom(intent.RoomID, func(r *model.Room) error {
		if r.Playing || !r.Full() {
			return errWrongPhase
		}
		if r.Ready < model.MaxPlayers {
			r.Ready++
		}
		full = r.Ready == model.MaxPlayers
		return nil
	})
	if d.dropOrReport(intent, err) {
		return
	}

	d.publisher.Publish(intent.RoomID, model.Event{
		Type:   model.TypeReady,
		Sender: intent.Sender.ID,
		RoomID: intent.RoomID,
	})
	if full {
		d.scheduler.Schedule(intent.RoomID)
	}
}

func (d *Dispatcher) handleCancel(intent model.Intent) {
	err := d.registry.WithRoom(intent.RoomID, func(r *model.Room) error {
		if r.Playing {
			return errWrongPhase
		}
		if r.Ready > 0 {
			r.Ready--
		}
		return nil
	})
	if d.dropOrReport(intent, err) {
		return
	}

	d.scheduler.Cancel(intent.RoomID)
	d.publisher.Publish(intent.RoomID, model.Event{
		Type:   model.TypeCancel,
		Sender: intent.Sender.ID,
		RoomID: intent.RoomID,
	})
}

// handleGameOver ends an in-progress game on behalf of a surrender or
// timeout, attributing the end to the intent's sender.
func (d *Dispatcher) handleGameOver(ctx context.Context, intent model.Intent, message string) {
	err := d.registry.WithRoom(intent.RoomID, func(r *model.Room) error {
		if !r.Playing {
			return errWrongPhase
		}
		r.EndGame()
		return nil
	})
	if d.dropOrReport(intent, err) {
		return
	}

	d.registry.SyncDirectory(ctx, intent.RoomID)
	d.publisher.Publish(intent.RoomID, model.Event{
		Type:    model.TypeGameEnd,
		Sender:  intent.Sender.ID,
		RoomID:  intent.RoomID,
		Message: message,
	})
}

func (d *Dispatcher) handleMove(ctx context.Context, intent model.Intent) {
	if intent.Index == nil || !model.ValidIndex(*intent.Index) {
		d.logger.Warn("dropping move without a valid index",
			slog.String("room_id", string(intent.RoomID)),
			slog.String("player_id", string(intent.Sender.ID)),
		)
		return
	}
	index := *intent.Index

	var (
		won  bool
		turn int
	)
	err := d.registry.WithRoom(intent.RoomID, func(r *model.Room) error {
		if !r.Playing {
			return errRoomNotPlaying
		}
		if !r.Board.StoneAt(model.PositionFromIndex(index)).IsEmpty() {
			return errCellOccupied
		}
		if model.ColorOf(r.Turn).IsBlack() && engine.IsForbidden(&r.Board, r.Turn, index) {
			return errForbiddenMove
		}
		turn = r.Turn
		engine.ApplyMove(r, index)
		r.TurnTimerStartTime = d.clock.Now().UnixMilli()
		if engine.CheckWin(&r.Board, index) {
			won = true
			r.EndGame()
		}
		return nil
	})
	if err != nil {
		d.publishError(intent, ruleMessage(err))
		return
	}

	if won {
		d.registry.SyncDirectory(ctx, intent.RoomID)
		d.publisher.Publish(intent.RoomID, model.Event{
			Type:    model.TypeGameEnd,
			Sender:  intent.Sender.ID,
			RoomID:  intent.RoomID,
			Message: fmt.Sprintf("%s wins", intent.Sender.Name),
			Index:   &index,
			Turn:    &turn,
		})
		return
	}
	d.publisher.Publish(intent.RoomID, model.Event{
		Type:   model.TypeAction,
		Sender: intent.Sender.ID,
		RoomID: intent.RoomID,
		Index:  &index,
		Turn:   &turn,
	})
}

func (d *Dispatcher) handleLeave(ctx context.Context, sessionID string, intent model.Intent) {
	d.sessions.Unbind(sessionID)
	d.Leave(ctx, intent.RoomID, intent.Sender.ID)
}

// Leave removes a player from a room, cancels any pending deferred start and
// announces the departure. Reports whether a removal occurred. If the leave
// destroyed the room, the publisher drops its topic so the room's broadcast
// goroutine does not outlive it.
func (d *Dispatcher) Leave(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) bool {
	if !d.registry.LeaveRoom(ctx, roomID, playerID) {
		return false
	}
	d.scheduler.Cancel(roomID)
	d.publisher.Publish(roomID, model.Event{
		Type:   model.TypeLeave,
		Sender: playerID,
		RoomID: roomID,
	})
	if _, ok := d.registry.GetRoom(roomID); !ok {
		d.publisher.RemoveTopic(roomID)
	}
	return true
}

// startGame is the deferred start action. It re-checks that the room is
// still full and fully ready before initializing, since players may have
// left or cancelled while the delay elapsed.
func (d *Dispatcher) startGame(roomID model.RoomID) {
	ctx := context.Background()

	var black model.PlayerID
	err := d.registry.WithRoom(roomID, func(r *model.Room) error {
		if r.Playing || !r.Full() || r.Ready < model.MaxPlayers {
			return errWrongPhase
		}
		black = r.Players[d.random.Intn(len(r.Players))].ID
		r.TurnLimit = d.turnLimit.Milliseconds()
		r.InitGame(black, d.clock.Now())
		return nil
	})
	if err != nil {
		d.logger.Info("deferred start aborted",
			slog.String("room_id", string(roomID)),
			slog.String("reason", err.Error()),
		)
		return
	}

	d.registry.SyncDirectory(ctx, roomID)
	d.logger.Info("game started",
		slog.String("room_id", string(roomID)),
		slog.String("black_player", string(black)),
	)
	d.publisher.Publish(roomID, model.Event{
		Type:        model.TypeGameStart,
		RoomID:      roomID,
		Message:     "game started",
		BlackPlayer: black,
	})
}

// dropOrReport handles the shared failure modes of phase-gated intents:
// absent rooms are reported to subscribers, wrong-phase intents are dropped.
// Returns true if the intent should not proceed.
func (d *Dispatcher) dropOrReport(intent model.Intent, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, errWrongPhase):
		d.logger.Warn("dropping intent for wrong phase",
			slog.String("type", string(intent.Type)),
			slog.String("room_id", string(intent.RoomID)),
			slog.String("player_id", string(intent.Sender.ID)),
		)
		return true
	default:
		d.publishError(intent, ruleMessage(err))
		return true
	}
}

func (d *Dispatcher) publishError(intent model.Intent, message string) {
	d.publisher.Publish(intent.RoomID, model.Event{
		Type:    model.TypeError,
		Sender:  intent.Sender.ID,
		RoomID:  intent.RoomID,
		Message: message,
	})
}

func ruleMessage(err error) string {
	if errors.Is(err, model.ErrRoomNotFound) {
		return "room not found"
	}
	return err.Error()
}
