package model

// BoardSize is the fixed grid dimension for every room
const BoardSize = 15

// Board is the game grid. Each non-empty cell stores the turn number at
// which its stone was placed (not a color flag); the color is derived from
// the parity of that number.
type Board [BoardSize][BoardSize]int

// Reset clears every cell
func (b *Board) Reset() {
	*b = Board{}
}

// StoneAt returns the color of the stone at pos. Out-of-bounds positions
// read as empty, which lets line scans run off the edge safely.
func (b *Board) StoneAt(pos Position) StoneColor {
	if !pos.InBounds() {
		return StoneEmpty
	}
	return ColorOf(b[pos.Row][pos.Col])
}

// StoneColor is the color of a stone (or the absence of one)
type StoneColor int

const (
	StoneEmpty StoneColor = iota
	StoneBlack
	StoneWhite
)

// ColorOf derives a stone color from a cell value: odd turn numbers are
// black, even are white, zero is an empty cell.
func ColorOf(value int) StoneColor {
	if value == 0 {
		return StoneEmpty
	}
	if value%2 == 1 {
		return StoneBlack
	}
	return StoneWhite
}

// IsBlack returns true for black stones
func (c StoneColor) IsBlack() bool {
	return c == StoneBlack
}

// IsEmpty returns true for empty cells
func (c StoneColor) IsEmpty() bool {
	return c == StoneEmpty
}

func (c StoneColor) String() string {
	switch c {
	case StoneBlack:
		return "black"
	case StoneWhite:
		return "white"
	default:
		return "empty"
	}
}

// Position is a board coordinate
type Position struct {
	Row int
	Col int
}

// PositionFromIndex converts a flattened cell index (row*15 + col) to a
// Position. The index is not bounds-checked; see ValidIndex.
func PositionFromIndex(index int) Position {
	return Position{Row: index / BoardSize, Col: index % BoardSize}
}

// Index returns the flattened cell index for the position
func (p Position) Index() int {
	return p.Row*BoardSize + p.Col
}

// Move returns the position shifted by distance steps along (dRow, dCol)
func (p Position) Move(dRow, dCol, distance int) Position {
	return Position{Row: p.Row + dRow*distance, Col: p.Col + dCol*distance}
}

// InBounds reports whether the position lies on the board
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// ValidIndex reports whether a flattened index addresses a board cell
func ValidIndex(index int) bool {
	return index >= 0 && index < BoardSize*BoardSize
}
