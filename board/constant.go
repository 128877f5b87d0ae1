package board

import (
	"github.com/daystram/x88chess/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = Width * Height

	// DefaultStartingPositionFEN uses the four field form this package writes.
	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"

	zobristSeed uint64 = 133927
)

// Square deltas on the 0x88 grid.
const (
	Up    = 16
	Down  = -16
	Left  = -1
	Right = 1

	UpLeft    = Up + Left
	UpRight   = Up + Right
	DownLeft  = Down + Left
	DownRight = Down + Right

	deltaOffset = 128
)

var (
	deltasKnight   = []int{33, 18, -14, -31, -33, -18, 14, 31}
	deltasBishop   = []int{UpLeft, UpRight, DownLeft, DownRight}
	deltasRook     = []int{Up, Down, Left, Right}
	deltasQueen    = []int{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}
	deltasKing     = deltasQueen
	deltasPawnTake = [2][]int{
		SideBlack: {DownLeft, DownRight},
		SideWhite: {UpLeft, UpRight},
	}

	rankPawnStart   = [2]position.Pos{SideBlack: position.Rank7, SideWhite: position.Rank2}
	rankPawnPromote = [2]position.Pos{SideBlack: position.Rank1, SideWhite: position.Rank8}

	// mightAttack tells whether a piece standing on some square could ever
	// reach a square delta away, ignoring blockers.
	mightAttack [pieceCodes][2 * deltaOffset]bool

	// lineStep holds the unit step from one square to another on the same
	// rank, file or diagonal. Zero when the squares are not aligned.
	lineStep [2 * deltaOffset]int

	zobristConstantPiece      [pieceCodes][TotalCells]uint64
	zobristConstantSideWhite  uint64
	zobristConstantCastle     [4 + 1]uint64
	zobristConstantHasCastled [2]uint64
	zobristConstantEnPassant  [TotalCells]uint64
)

func init() {
	initMightAttack()
	initLineStep()
	initZobrist()
}

func initMightAttack() {
	for from := position.Pos(0); from < 128; from++ {
		if !from.IsValid() {
			continue
		}
		for to := position.Pos(0); to < 128; to++ {
			if !to.IsValid() || to == from {
				continue
			}
			delta := int(to) - int(from)
			absDelta := abs(delta)
			sameRank := from.Y() == to.Y()
			sameFile := absDelta%16 == 0
			diagonal := absDelta%15 == 0 || absDelta%17 == 0
			for p := Piece(0); p < pieceCodes; p++ {
				var ok bool
				switch p.Type() {
				case TypePawn:
					ok = contains(deltasPawnTake[p.Side()], delta)
				case TypeKnight:
					ok = contains(deltasKnight, delta)
				case TypeKing:
					ok = contains(deltasKing, delta)
				case TypeBishop:
					ok = diagonal
				case TypeRook:
					ok = sameRank || sameFile
				case TypeQueen:
					ok = diagonal || sameRank || sameFile
				}
				if ok {
					mightAttack[p][delta+deltaOffset] = true
				}
			}
		}
	}
}

func initLineStep() {
	for from := position.Pos(0); from < 128; from++ {
		if !from.IsValid() {
			continue
		}
		for _, dir := range deltasQueen {
			for to := from.Offset(dir); to.IsValid(); to = to.Offset(dir) {
				lineStep[int(to)-int(from)+deltaOffset] = dir
			}
		}
	}
}

func initZobrist() {
	r := NewPseudoRand()
	r.Seed(zobristSeed)
	for p := Piece(0); p < pieceCodes; p++ {
		if !p.IsReal() {
			continue
		}
		for i := 0; i < TotalCells; i++ {
			zobristConstantPiece[p][i] = r.Uint64()
		}
	}
	zobristConstantSideWhite = r.Uint64()
	for d := CastleDirectionWhiteRight; d <= CastleDirectionBlackLeft; d++ {
		zobristConstantCastle[d] = r.Uint64()
	}
	zobristConstantHasCastled[SideBlack] = r.Uint64()
	zobristConstantHasCastled[SideWhite] = r.Uint64()
	for i := 0; i < TotalCells; i++ {
		zobristConstantEnPassant[i] = r.Uint64()
	}
}

// MightAttack reports whether piece p on from could attack to on an empty
// board.
func MightAttack(p Piece, from, to position.Pos) bool {
	if !p.IsReal() || !from.IsValid() || !to.IsValid() {
		return false
	}
	return mightAttack[p][int(to)-int(from)+deltaOffset]
}
