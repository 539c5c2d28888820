// Package engine implements the board rules: win detection and the Renju
// forbidden-move rules that restrict black. All functions are pure over the
// grid they are given, but they read (and IsForbidden transiently writes)
// mutable room state, so callers must hold the owning room's lock.
package engine

import "github.com/scoula/omok-server/internal/model"

// The four scan axes as (dRow, dCol). Each axis is walked in both
// orientations, so four entries cover all eight directions.
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal
	{1, -1}, // anti-diagonal
}

// CheckWin reports whether the stone at index completes a winning line.
// A win is a run of exactly five consecutive same-color stones on one axis;
// runs of six or more win for neither color (black sees them as overlines,
// white simply has not made five). Both colors can win.
func CheckWin(b *model.Board, index int) bool {
	pos := model.PositionFromIndex(index)
	color := b.StoneAt(pos)
	if color.IsEmpty() {
		return false
	}
	for _, dir := range directions {
		if countConsecutive(b, pos, dir[0], dir[1], color) == 5 {
			return true
		}
	}
	return false
}

// ApplyMove stamps the room's current turn number into the target cell and
// advances the turn counter. The caller validates the cell beforehand.
func ApplyMove(r *model.Room, index int) {
	pos := model.PositionFromIndex(index)
	r.Board[pos.Row][pos.Col] = r.Turn
	r.Turn++
}

// countConsecutive counts the run of same-color stones through pos along an
// axis, extending from pos in both orientations. The placed stone itself
// counts, so the result is always at least 1.
func countConsecutive(b *model.Board, pos model.Position, dRow, dCol int, color model.StoneColor) int {
	count := 1
	for _, sign := range [2]int{-1, 1} {
		current := pos.Move(dRow, dCol, sign)
		for current.InBounds() && b.StoneAt(current) == color {
			count++
			current = current.Move(dRow, dCol, sign)
		}
	}
	return count
}
