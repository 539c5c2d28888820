package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoomSeating(t *testing.T) {
	r := &Room{}
	r.Players = append(r.Players, Player{ID: "p1", Name: "Alice"})

	assert.True(t, r.HasPlayer("p1"))
	assert.False(t, r.HasPlayer("p2"))
	assert.False(t, r.Full())

	r.Players = append(r.Players, Player{ID: "p2", Name: "Bob"})
	assert.True(t, r.Full())

	assert.True(t, r.RemovePlayer("p1"))
	assert.False(t, r.RemovePlayer("p1"))
	assert.Equal(t, []Player{{ID: "p2", Name: "Bob"}}, r.Players)
}

func TestInitGame(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := &Room{Turn: 17, Ready: 2}
	r.Board[5][5] = 9

	r.InitGame("p1", now)

	assert.Equal(t, Board{}, r.Board)
	assert.Equal(t, 1, r.Turn)
	assert.Equal(t, 0, r.Ready)
	assert.True(t, r.Playing)
	assert.Equal(t, PlayerID("p1"), r.BlackPlayer)
	assert.Equal(t, now.UnixMilli(), r.TurnTimerStartTime)
}

func TestEndGame(t *testing.T) {
	r := &Room{Playing: true, Ready: 2}

	r.EndGame()

	assert.False(t, r.Playing)
	assert.Equal(t, 0, r.Ready)
}
