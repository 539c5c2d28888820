package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/scoula/omok-server/internal/model"
)

type ForbiddenSuite struct {
	suite.Suite
	board     model.Board
	nextBlack int
	nextWhite int
}

func TestForbiddenSuite(t *testing.T) {
	suite.Run(t, new(ForbiddenSuite))
}

func (s *ForbiddenSuite) SetupTest() {
	s.board = model.Board{}
	s.nextBlack = 1
	s.nextWhite = 2
}

func (s *ForbiddenSuite) black(row, col int) {
	s.board[row][col] = s.nextBlack
	s.nextBlack += 2
}

func (s *ForbiddenSuite) white(row, col int) {
	s.board[row][col] = s.nextWhite
	s.nextWhite += 2
}

// isForbidden probes the candidate cell with the next black turn number
func (s *ForbiddenSuite) isForbidden(row, col int) bool {
	index := model.Position{Row: row, Col: col}.Index()
	return IsForbidden(&s.board, s.nextBlack, index)
}

func (s *ForbiddenSuite) TestDoubleOpenThreeIsForbidden() {
	// Placing at (7,7) creates an open three on the row and another on the
	// column, neither completing five
	s.black(7, 8)
	s.black(7, 9)
	s.black(8, 7)
	s.black(9, 7)

	s.True(s.isForbidden(7, 7))
}

func (s *ForbiddenSuite) TestSingleOpenThreeIsAllowed() {
	s.black(7, 8)
	s.black(7, 9)

	s.False(s.isForbidden(7, 7))
}

func (s *ForbiddenSuite) TestBlockedThreesAreNotOpen() {
	// White stones close one end of each three, so neither is open
	s.black(7, 8)
	s.black(7, 9)
	s.white(7, 10)
	s.black(8, 7)
	s.black(9, 7)
	s.white(10, 7)

	s.False(s.isForbidden(7, 7))
}

func (s *ForbiddenSuite) TestDoubleFourIsForbidden() {
	// Placing at (7,7) makes four in a row horizontally and vertically
	s.black(7, 4)
	s.black(7, 5)
	s.black(7, 6)
	s.black(4, 7)
	s.black(5, 7)
	s.black(6, 7)

	s.True(s.isForbidden(7, 7))
}

func (s *ForbiddenSuite) TestFourPlusOpenThreeIsAllowed() {
	// A four on one axis and an open three on another is a legal move
	s.black(7, 4)
	s.black(7, 5)
	s.black(7, 6)
	s.black(8, 7)
	s.black(9, 7)

	s.False(s.isForbidden(7, 7))
}

func (s *ForbiddenSuite) TestOverlineIsForbidden() {
	// Placing at (7,7) joins two runs into six in a row
	s.black(7, 4)
	s.black(7, 5)
	s.black(7, 6)
	s.black(7, 8)
	s.black(7, 9)

	s.True(s.isForbidden(7, 7))
}

func (s *ForbiddenSuite) TestFiveOverridesDoubleThree() {
	// The move completes an exact five horizontally while also creating two
	// open threes; the immediate win overrides the restriction
	s.black(7, 3)
	s.black(7, 4)
	s.black(7, 5)
	s.black(7, 6)
	s.black(8, 7)
	s.black(9, 7)
	s.black(8, 8)
	s.black(9, 9)

	s.False(s.isForbidden(7, 7))
}

func (s *ForbiddenSuite) TestFiveDoesNotOverrideWhenNotCompleted() {
	// Same shape minus one horizontal stone: no five, two open threes remain
	s.black(7, 4)
	s.black(7, 5)
	s.black(7, 6)
	s.black(8, 7)
	s.black(9, 7)
	s.black(8, 8)
	s.black(9, 9)

	// The horizontal stones form a four, the column and diagonal are open
	// threes; a four plus threes is only forbidden once threes reach two
	s.True(s.isForbidden(7, 7))
}

func (s *ForbiddenSuite) TestProbeRestoresTheBoard() {
	s.black(7, 8)
	s.black(7, 9)
	s.black(8, 7)
	s.black(9, 7)
	before := s.board

	s.True(s.isForbidden(7, 7))
	s.Equal(before, s.board)
}

func (s *ForbiddenSuite) TestEmptyNeighborhoodIsAllowed() {
	s.False(s.isForbidden(7, 7))
}
