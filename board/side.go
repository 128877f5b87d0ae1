package board

type Side uint8

const (
	SideBlack Side = iota
	SideWhite
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	return s ^ 1
}

// Forward returns the pawn push direction for the side.
func (s Side) Forward() int {
	if s == SideWhite {
		return Up
	}
	return Down
}
