package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/scoula/omok-server/internal/model"
)

type EngineSuite struct {
	suite.Suite
	board     model.Board
	nextBlack int
	nextWhite int
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.board = model.Board{}
	s.nextBlack = 1
	s.nextWhite = 2
}

// black stamps the next odd turn number into a cell and returns its index
func (s *EngineSuite) black(row, col int) int {
	s.board[row][col] = s.nextBlack
	s.nextBlack += 2
	return model.Position{Row: row, Col: col}.Index()
}

// white stamps the next even turn number into a cell and returns its index
func (s *EngineSuite) white(row, col int) int {
	s.board[row][col] = s.nextWhite
	s.nextWhite += 2
	return model.Position{Row: row, Col: col}.Index()
}

func (s *EngineSuite) TestHorizontalFiveWins() {
	s.black(7, 3)
	s.black(7, 4)
	s.black(7, 5)
	s.black(7, 6)
	last := s.black(7, 7)

	s.True(CheckWin(&s.board, last))
}

func (s *EngineSuite) TestVerticalFiveWinsForWhite() {
	s.white(3, 7)
	s.white(4, 7)
	s.white(5, 7)
	s.white(6, 7)
	last := s.white(7, 7)

	s.True(CheckWin(&s.board, last))
}

func (s *EngineSuite) TestDiagonalFiveWins() {
	s.black(3, 3)
	s.black(4, 4)
	s.black(5, 5)
	s.black(6, 6)
	last := s.black(7, 7)

	s.True(CheckWin(&s.board, last))
}

func (s *EngineSuite) TestAntiDiagonalFiveWins() {
	s.black(3, 11)
	s.black(4, 10)
	s.black(5, 9)
	s.black(6, 8)
	last := s.black(7, 7)

	s.True(CheckWin(&s.board, last))
}

func (s *EngineSuite) TestFourInARowIsNotWin() {
	s.black(7, 4)
	s.black(7, 5)
	s.black(7, 6)
	last := s.black(7, 7)

	s.False(CheckWin(&s.board, last))
}

func (s *EngineSuite) TestSixInARowIsNotWin() {
	// A run of six is an overline, not five, so it wins for neither color
	s.black(7, 2)
	s.black(7, 3)
	s.black(7, 4)
	s.black(7, 6)
	s.black(7, 7)
	middle := s.black(7, 5)

	s.False(CheckWin(&s.board, middle))
}

func (s *EngineSuite) TestFiveAtBoardEdgeWins() {
	s.black(0, 10)
	s.black(0, 11)
	s.black(0, 12)
	s.black(0, 13)
	last := s.black(0, 14)

	s.True(CheckWin(&s.board, last))
}

func (s *EngineSuite) TestEmptyCellIsNotWin() {
	s.black(7, 3)
	s.black(7, 4)
	s.black(7, 5)
	s.black(7, 6)

	empty := model.Position{Row: 7, Col: 7}.Index()
	s.False(CheckWin(&s.board, empty))
}

func (s *EngineSuite) TestOpponentStoneBreaksTheRun() {
	s.black(7, 3)
	s.black(7, 4)
	s.white(7, 5)
	s.black(7, 6)
	last := s.black(7, 7)

	s.False(CheckWin(&s.board, last))
}

func (s *EngineSuite) TestApplyMoveStampsTurnAndAdvances() {
	room := &model.Room{Turn: 3}
	index := model.Position{Row: 2, Col: 9}.Index()

	ApplyMove(room, index)

	s.Equal(3, room.Board[2][9])
	s.Equal(4, room.Turn)
}
