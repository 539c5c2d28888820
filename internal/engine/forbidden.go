package engine

import "github.com/scoula/omok-server/internal/model"

// A pattern is a positional template along one axis, anchored at the cell
// being evaluated (offset 0). stones[i] == true requires a black stone at
// offsets[i]; false requires an empty cell.
type pattern struct {
	offsets []int
	stones  []bool
}

// fourPatterns match any arrangement of four black stones within a 4-5 cell
// window, contiguous or with one internal gap, extendable to five.
var fourPatterns = []pattern{
	{[]int{0, 1, 2, 3}, []bool{true, true, true, true}},
	{[]int{0, 1, 2, 3, 4}, []bool{true, true, false, true, true}},
	{[]int{0, 1, 2, 3, 4}, []bool{false, true, true, false, true}},
	{[]int{0, 1, 2, 3, 4}, []bool{true, false, true, true, true}},
	{[]int{-1, 0, 1, 2}, []bool{true, true, true, true}},
	{[]int{-1, 0, 1, 2, 3}, []bool{true, true, false, true, true}},
	{[]int{-1, 0, 1, 2, 3}, []bool{true, true, true, false, true}},
	{[]int{-2, -1, 0, 1, 2}, []bool{true, true, true, false, true}},
}

// openThreePatterns match three black stones with open extension space on
// both relevant sides, i.e. shapes that can become an open four.
var openThreePatterns = []pattern{
	{[]int{-2, -1, 0, 1, 2}, []bool{false, true, true, true, false}},
	{[]int{-1, 0, 1, 2, 3}, []bool{false, true, true, true, false}},
	{[]int{-1, 0, 1, 2, 3, 4}, []bool{false, true, true, false, true, false}},
	{[]int{-1, 0, 1, 2, 3, 4}, []bool{false, true, false, true, true, false}},
	{[]int{-2, -1, 0, 1, 2}, []bool{false, true, true, false, true, false}},
}

// IsForbidden reports whether placing a black stone at index, as the given
// turn, would be an illegal Renju move: an overline (six or more in a row),
// a double open-three, or a double four -- unless the same move also
// completes an exact five, which wins immediately and overrides the
// restriction. Only black is ever restricted; callers gate on the mover's
// color before calling.
//
// The candidate stone is probed into the board and the original cell value
// restored before returning, which is why this must run under the room lock.
func IsForbidden(b *model.Board, turn, index int) bool {
	pos := model.PositionFromIndex(index)
	original := b[pos.Row][pos.Col]
	b[pos.Row][pos.Col] = turn
	defer func() {
		b[pos.Row][pos.Col] = original
	}()

	var overline, five bool
	for _, dir := range directions {
		count := countConsecutive(b, pos, dir[0], dir[1], model.StoneBlack)
		if count >= 6 {
			overline = true
		}
		if count == 5 {
			five = true
		}
	}

	threes := countOpenThrees(b, pos)
	fours := countFours(b, pos)

	return (overline || threes >= 2 || fours >= 2) && !five
}

// countOpenThrees counts open-three shapes through pos across all axes
func countOpenThrees(b *model.Board, pos model.Position) int {
	count := 0
	for _, dir := range directions {
		count += countPatterns(b, pos, dir[0], dir[1], openThreePatterns)
	}
	return count
}

// countFours counts four shapes through pos across all axes
func countFours(b *model.Board, pos model.Position) int {
	count := 0
	for _, dir := range directions {
		count += countPatterns(b, pos, dir[0], dir[1], fourPatterns)
	}
	return count
}

// countPatterns tests each template in both orientations along one axis
func countPatterns(b *model.Board, pos model.Position, dRow, dCol int, patterns []pattern) int {
	count := 0
	for _, p := range patterns {
		for _, sign := range [2]int{-1, 1} {
			if hasPattern(b, pos, dRow*sign, dCol*sign, p) {
				count++
			}
		}
	}
	return count
}

// hasPattern checks one template at one orientation. StoneAt reads
// off-board cells as empty, so a black requirement past the edge fails
// while an open requirement past the edge is satisfied.
func hasPattern(b *model.Board, pos model.Position, dRow, dCol int, p pattern) bool {
	for i, offset := range p.offsets {
		check := pos.Move(dRow, dCol, offset)
		stone := b.StoneAt(check)
		if p.stones[i] {
			if !stone.IsBlack() {
				return false
			}
		} else {
			if !stone.IsEmpty() {
				return false
			}
		}
	}
	return true
}
