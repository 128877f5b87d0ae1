package engine

import (
	"github.com/daystram/x88chess/board"
	"github.com/daystram/x88chess/position"
)

// Evaluator scores a board relative to the side to move. Mate, Stalemate
// and Infinity are the bounds the search works with for that evaluator.
type Evaluator interface {
	Evaluate(b *board.Board) int32
	Mate() int32
	Stalemate() int32
	Infinity() int32
	PawnWeight() int32
}

// pstIndex maps a square to an index of the tables below. Tables are laid
// out as seen from White, rank 8 first.
func pstIndex(s board.Side, pos position.Pos) int {
	row, col := int(pos.Y()), int(pos.X())
	if s == board.SideWhite {
		return (7-row)*8 + col
	}
	return row*8 + col
}

// NullEvaluator scores every position as even.
type NullEvaluator struct{}

var _ Evaluator = NullEvaluator{}

func (NullEvaluator) Evaluate(*board.Board) int32 { return 0 }
func (NullEvaluator) Mate() int32                 { return 1 }
func (NullEvaluator) Stalemate() int32            { return 0 }
func (NullEvaluator) Infinity() int32             { return 2 }
func (NullEvaluator) PawnWeight() int32           { return 0 }

const (
	scoreInfinity  int32 = 1000000
	scoreMate      int32 = 300000
	scoreStalemate int32 = 0
)

var (
	simplePieceValue = [8]int32{
		board.TypePawn:   100,
		board.TypeKnight: 300,
		board.TypeBishop: 300,
		board.TypeRook:   500,
		board.TypeQueen:  900,
		board.TypeKing:   350,
	}
	simpleCastleBonus int32 = 10

	simplePosition = [8][64]int32{
		board.TypePawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 15, 20, 20, 15, 10, 5,
			4, 8, 12, 16, 16, 12, 8, 4,
			0, 6, 9, 10, 10, 9, 6, 0,
			0, 4, 6, 10, 10, 6, 4, 0,
			0, 2, 3, 4, 4, 3, 2, 0,
			0, 0, 0, -5, -5, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		board.TypeKnight: {
			-10, -5, -5, -5, -5, -5, -5, -10,
			-8, 0, 0, 3, 3, 0, 0, -8,
			-8, 0, 10, 8, 8, 10, 0, -8,
			-8, 0, 8, 10, 10, 8, 0, -8,
			-8, 0, 8, 10, 10, 8, 0, -8,
			-8, 0, 10, 8, 8, 10, 0, -8,
			-8, 0, 0, 3, 3, 0, 0, -8,
			-10, -5, -5, -5, -5, -5, -5, -10,
		},
		board.TypeBishop: {
			-5, -5, -5, -5, -5, -5, -5, -5,
			-5, 10, 5, 8, 8, 5, 10, -5,
			-5, 5, 3, 8, 8, 3, 5, -5,
			-5, 3, 10, 3, 3, 10, 3, -5,
			-5, 3, 10, 3, 3, 10, 3, -5,
			-5, 5, 3, 8, 8, 3, 5, -5,
			-5, 10, 5, 8, 8, 5, 10, -5,
			-5, -5, -5, -5, -5, -5, -5, -5,
		},
	}
)

// SimpleEvaluator counts material, pawn and minor piece placement, and a
// bonus for having castled.
type SimpleEvaluator struct{}

var _ Evaluator = SimpleEvaluator{}

func (SimpleEvaluator) Evaluate(b *board.Board) int32 {
	us := b.Turn()
	them := us.Opposite()
	score := simpleSideValue(b, us) - simpleSideValue(b, them)
	if b.HasCastled(us) {
		score += simpleCastleBonus
	}
	if b.HasCastled(them) {
		score -= simpleCastleBonus
	}
	return score
}

func simpleSideValue(b *board.Board, s board.Side) int32 {
	var value int32
	for _, pos := range b.Pieces(s) {
		t := b.At(pos).Type()
		value += simplePieceValue[t] + simplePosition[t][pstIndex(s, pos)]
	}
	return value
}

func (SimpleEvaluator) Mate() int32       { return scoreMate }
func (SimpleEvaluator) Stalemate() int32  { return scoreStalemate }
func (SimpleEvaluator) Infinity() int32   { return scoreInfinity }
func (SimpleEvaluator) PawnWeight() int32 { return simplePieceValue[board.TypePawn] }

const phaseConstant = 256

var (
	// PST values from https://www.chessprogramming.org/Simplified_Evaluation_Function
	advancedPieceValue = [8]int32{
		board.TypePawn:   100,
		board.TypeKnight: 320,
		board.TypeBishop: 330,
		board.TypeRook:   500,
		board.TypeQueen:  900,
		board.TypeKing:   scoreMate,
	}
	advancedPosition = [8][64]int32{
		board.TypePawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			50, 50, 50, 50, 50, 50, 50, 50,
			10, 10, 20, 30, 30, 20, 10, 10,
			5, 5, 10, 25, 25, 10, 5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, -5, -10, 0, 0, -10, -5, 5,
			5, 10, 10, -20, -20, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		board.TypeKnight: {
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
		board.TypeBishop: {
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		board.TypeRook: {
			0, 5, 5, 5, 5, 5, 5, 0,
			5, 10, 10, 10, 10, 10, 10, 5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			0, 0, 0, 5, 5, 0, 0, 0,
		},
		board.TypeQueen: {
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			0, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 0, -10,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		board.TypeKing: {
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			20, 20, 0, 0, 0, 0, 20, 20,
			20, 30, 10, 0, 0, 10, 30, 20,
		},
	}
	advancedKingEndPosition = [64]int32{
		-50, -40, -30, -20, -20, -30, -40, -50,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	}

	// indexed by the side's own pawn count
	knightPawnAdjustment     = [9]int32{-30, -20, -15, -10, -5, 0, 5, 10, 15}
	rookPawnAdjustment       = [9]int32{25, 20, 15, 10, 5, 0, -5, -10, -15}
	dualBishopPawnAdjustment = [9]int32{40, 40, 35, 30, 25, 20, 20, 15, 15}

	knightPairPenalty int32 = -10
	rookPairPenalty   int32 = -20
	noPawnsPenalty    int32 = -20
	scoreTempoBonus   int32 = 10

	phaseWeight = [8]int{
		board.TypeKnight: 1,
		board.TypeBishop: 1,
		board.TypeRook:   2,
		board.TypeQueen:  4,
	}
	phaseTotal = phaseWeight[board.TypeKnight]*4 + phaseWeight[board.TypeBishop]*4 +
		phaseWeight[board.TypeRook]*4 + phaseWeight[board.TypeQueen]*2
)

// AdvancedEvaluator blends middle game and end game scores by the material
// left on the board, and adjusts piece values by the pawn count.
type AdvancedEvaluator struct{}

var _ Evaluator = AdvancedEvaluator{}

func (AdvancedEvaluator) Evaluate(b *board.Board) int32 {
	us := b.Turn()
	them := us.Opposite()
	phase := int32(gamePhase(b))

	taper := func(s board.Side) int32 {
		opening := advancedSideValue(b, s, false)
		end := advancedSideValue(b, s, true)
		return (opening*(phaseConstant-phase) + end*phase) / phaseConstant
	}
	return taper(us) - taper(them)
}

// gamePhase runs from 0 with all pieces on the board to phaseConstant once
// only kings and pawns are left.
func gamePhase(b *board.Board) int {
	phase := phaseTotal
	for _, t := range []board.PieceType{board.TypeKnight, board.TypeBishop, board.TypeRook, board.TypeQueen} {
		phase -= b.CountOfType(t) * phaseWeight[t]
	}
	return (phase*phaseConstant + phaseTotal/2) / phaseTotal
}

func advancedSideValue(b *board.Board, s board.Side, endGame bool) int32 {
	count := func(t board.PieceType) int {
		return b.CountOf(board.NewPiece(s, t))
	}
	pawns := count(board.TypePawn)
	opponentPawns := b.CountOf(board.NewPiece(s.Opposite(), board.TypePawn))
	knights, bishops := count(board.TypeKnight), count(board.TypeBishop)
	rooks, queens := count(board.TypeRook), count(board.TypeQueen)

	var value, king int32
	for _, pos := range b.Pieces(s) {
		t := b.At(pos).Type()
		idx := pstIndex(s, pos)
		switch t {
		case board.TypeKing:
			king = advancedPieceValue[t] + advancedPosition[t][idx]
			if endGame {
				king = advancedPieceValue[t] + advancedKingEndPosition[idx]
			}
			continue
		case board.TypeKnight:
			value += knightPawnAdjustment[pawns]
		case board.TypeRook:
			value += rookPawnAdjustment[pawns]
		}
		value += advancedPieceValue[t] + advancedPosition[t][idx]
	}

	if bishops > 1 {
		value += dualBishopPawnAdjustment[pawns]
	}
	if knights > 1 {
		value += knightPairPenalty
	}
	if rooks > 1 {
		value += rookPairPenalty
	}
	if pawns == 0 {
		value += noPawnsPenalty
	}
	if s == b.Turn() {
		value += scoreTempoBonus
	}

	// a lone minor piece, or two knights against a bare king, cannot win
	if pawns == 0 && value > 0 && value < advancedPieceValue[board.TypeBishop] {
		value = 0
	}
	if value > 0 && pawns == 0 && opponentPawns == 0 && knights == 2 && bishops == 0 && rooks == 0 && queens == 0 {
		value = 0
	}

	return value + king
}

func (AdvancedEvaluator) Mate() int32       { return scoreMate }
func (AdvancedEvaluator) Stalemate() int32  { return scoreStalemate }
func (AdvancedEvaluator) Infinity() int32   { return scoreInfinity }
func (AdvancedEvaluator) PawnWeight() int32 { return advancedPieceValue[board.TypePawn] }
