package engine

import (
	"fmt"
	"strings"

	"github.com/daystram/x88chess/board"
)

type PVLine struct {
	mvs []board.Move
}

func (pvl PVLine) GetPV() board.Move {
	if len(pvl.mvs) == 0 {
		return board.Move{}
	}
	return pvl.mvs[0]
}

func (pvl *PVLine) Push(mv board.Move) {
	pvl.mvs = append(pvl.mvs, mv)
}

func (pvl PVLine) Moves() []board.Move {
	return pvl.mvs
}

func (pvl PVLine) Len() int {
	return len(pvl.mvs)
}

func (pvl PVLine) StringUCI() string {
	builder := strings.Builder{}
	for i, mv := range pvl.mvs {
		_, _ = builder.WriteString(mv.UCI())
		if i < len(pvl.mvs)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}

func (pvl PVLine) String(b *board.Board) string {
	return DumpHistory(b, pvl.mvs)
}

// DumpHistory renders mvs played from b in numbered SAN, e.g. "3... Nf6 4. e5".
func DumpHistory(b *board.Board, mvs []board.Move) string {
	if b == nil || len(mvs) < 1 {
		return ""
	}
	builder := strings.Builder{}
	bb := b.Clone()
	fullMoveClock := bb.Ply()/2 + 1
	if bb.Turn() == board.SideBlack {
		_, _ = builder.WriteString(fmt.Sprintf("%d... ", fullMoveClock))
	}
	for i, mv := range mvs {
		if bb.Turn() == board.SideWhite {
			_, _ = builder.WriteString(fmt.Sprintf("%d. %s", fullMoveClock, bb.SAN(mv)))
		} else {
			_, _ = builder.WriteString(bb.SAN(mv))
			fullMoveClock++
		}
		bb.Apply(mv)
		if bb.State() == board.StateStalemate {
			_, _ = builder.WriteRune('=')
		}
		if i < len(mvs)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}
