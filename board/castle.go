package board

import "github.com/daystram/x88chess/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

var (
	maskCastleRights = [4 + 1]CastleRights{
		0,
		0b1000, // CastleDirectionWhiteRight
		0b0100, // CastleDirectionWhiteLeft
		0b0010, // CastleDirectionBlackRight
		0b0001, // CastleDirectionBlackLeft
	}

	castleDirections = [2][2]CastleDirection{
		SideBlack: {CastleDirectionBlackRight, CastleDirectionBlackLeft},
		SideWhite: {CastleDirectionWhiteRight, CastleDirectionWhiteLeft},
	}
)

// castleGeometry holds the fixed squares of one castling move.
type castleGeometry struct {
	kingFrom, kingTo position.Pos
	rookFrom, rookTo position.Pos
	transit          position.Pos
	empty            []position.Pos
}

var posCastling = [4 + 1]castleGeometry{
	CastleDirectionWhiteRight: {
		kingFrom: position.E1, kingTo: position.G1,
		rookFrom: position.H1, rookTo: position.F1,
		transit: position.F1,
		empty:   []position.Pos{position.F1, position.G1},
	},
	CastleDirectionWhiteLeft: {
		kingFrom: position.E1, kingTo: position.C1,
		rookFrom: position.A1, rookTo: position.D1,
		transit: position.D1,
		empty:   []position.Pos{position.B1, position.C1, position.D1},
	},
	CastleDirectionBlackRight: {
		kingFrom: position.E8, kingTo: position.G8,
		rookFrom: position.H8, rookTo: position.F8,
		transit: position.F8,
		empty:   []position.Pos{position.F8, position.G8},
	},
	CastleDirectionBlackLeft: {
		kingFrom: position.E8, kingTo: position.C8,
		rookFrom: position.A8, rookTo: position.D8,
		transit: position.D8,
		empty:   []position.Pos{position.B8, position.C8, position.D8},
	},
}

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White 0-0"
	case CastleDirectionWhiteLeft:
		return "White 0-0-0"
	case CastleDirectionBlackRight:
		return "Black 0-0"
	case CastleDirectionBlackLeft:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

func (d CastleDirection) Side() Side {
	if d.IsWhite() {
		return SideWhite
	}
	return SideBlack
}

// castleDirectionByKingMove matches the canonical king source and destination
// pairs. Any other king move returns CastleDirectionUnknown.
func castleDirectionByKingMove(from, to position.Pos) CastleDirection {
	for d := CastleDirectionWhiteRight; d <= CastleDirectionBlackLeft; d++ {
		if posCastling[d].kingFrom == from && posCastling[d].kingTo == to {
			return d
		}
	}
	return CastleDirectionUnknown
}

// castleDirectionByCorner returns the right tied to a rook corner.
func castleDirectionByCorner(pos position.Pos) CastleDirection {
	switch pos {
	case position.H1:
		return CastleDirectionWhiteRight
	case position.A1:
		return CastleDirectionWhiteLeft
	case position.H8:
		return CastleDirectionBlackRight
	case position.A8:
		return CastleDirectionBlackLeft
	default:
		return CastleDirectionUnknown
	}
}

type CastleRights uint8

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	return c.IsAllowed(castleDirections[s][0]) || c.IsAllowed(castleDirections[s][1])
}
