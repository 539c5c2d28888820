package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorOf(t *testing.T) {
	assert.Equal(t, StoneEmpty, ColorOf(0))
	assert.Equal(t, StoneBlack, ColorOf(1))
	assert.Equal(t, StoneWhite, ColorOf(2))
	assert.Equal(t, StoneBlack, ColorOf(225))
	assert.Equal(t, StoneWhite, ColorOf(224))
}

func TestPositionIndexRoundTrip(t *testing.T) {
	assert.Equal(t, Position{Row: 0, Col: 0}, PositionFromIndex(0))
	assert.Equal(t, Position{Row: 0, Col: 14}, PositionFromIndex(14))
	assert.Equal(t, Position{Row: 1, Col: 0}, PositionFromIndex(15))
	assert.Equal(t, Position{Row: 14, Col: 14}, PositionFromIndex(224))

	for _, index := range []int{0, 14, 15, 112, 224} {
		assert.Equal(t, index, PositionFromIndex(index).Index())
	}
}

func TestValidIndex(t *testing.T) {
	assert.True(t, ValidIndex(0))
	assert.True(t, ValidIndex(224))
	assert.False(t, ValidIndex(-1))
	assert.False(t, ValidIndex(225))
}

func TestStoneAtOutOfBoundsReadsEmpty(t *testing.T) {
	var b Board
	b[0][0] = 1

	assert.Equal(t, StoneBlack, b.StoneAt(Position{Row: 0, Col: 0}))
	assert.Equal(t, StoneEmpty, b.StoneAt(Position{Row: -1, Col: 0}))
	assert.Equal(t, StoneEmpty, b.StoneAt(Position{Row: 0, Col: 15}))
}

func TestBoardReset(t *testing.T) {
	var b Board
	b[3][4] = 7
	b[14][14] = 8

	b.Reset()

	assert.Equal(t, Board{}, b)
}
