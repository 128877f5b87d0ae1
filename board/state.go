package board

// State is the outcome of the position for the side to play. Check and
// checkmate states name the side whose king is attacked.
type State uint8

const (
	StateUnknown State = iota
	StateRunning
	StateCheckWhite
	StateCheckBlack
	StateCheckmateWhite
	StateCheckmateBlack
	StateStalemate
)

var stateNames = [...]string{
	StateUnknown:        "StateUnknown",
	StateRunning:        "StateRunning",
	StateCheckWhite:     "StateCheckWhite",
	StateCheckBlack:     "StateCheckBlack",
	StateCheckmateWhite: "StateCheckmateWhite",
	StateCheckmateBlack: "StateCheckmateBlack",
	StateStalemate:      "StateStalemate",
}

// State derives the game state from the side to play. Draws by repetition
// depend on the game record and are left to the caller.
func (b *Board) State() State {
	check, stuck := b.InCheck(), len(b.GenerateMoves()) == 0
	switch {
	case stuck && !check:
		return StateStalemate
	case stuck:
		return [2]State{SideBlack: StateCheckmateBlack, SideWhite: StateCheckmateWhite}[b.turn]
	case check:
		return [2]State{SideBlack: StateCheckBlack, SideWhite: StateCheckWhite}[b.turn]
	default:
		return StateRunning
	}
}

// IsRunning reports whether the side to play has a move.
func (s State) IsRunning() bool {
	return s == StateRunning || s.IsCheck()
}

func (s State) IsCheck() bool {
	return s == StateCheckWhite || s == StateCheckBlack
}

func (s State) IsCheckmate() bool {
	return s == StateCheckmateWhite || s == StateCheckmateBlack
}

func (s State) IsDraw() bool {
	return s == StateStalemate
}

// Winner returns the side that delivered mate.
func (s State) Winner() (Side, bool) {
	switch s {
	case StateCheckmateWhite:
		return SideBlack, true
	case StateCheckmateBlack:
		return SideWhite, true
	default:
		return SideBlack, false
	}
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return ""
}
