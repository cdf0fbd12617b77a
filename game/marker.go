package game

type Marker int8

const (
	Empty Marker = iota
	AI
	Human
)

// Opponent swaps AI and Human. Empty stays Empty.
func (m Marker) Opponent() Marker {
	switch m {
	case AI:
		return Human
	case Human:
		return AI
	}
	return Empty
}

func (m Marker) String() string {
	switch m {
	case AI:
		return "o"
	case Human:
		return "x"
	case Empty:
		return "."
	}
	return "?"
}

func (m Marker) Name() string {
	switch m {
	case AI:
		return "ai"
	case Human:
		return "human"
	case Empty:
		return "none"
	}
	return "unknown"
}

func (m Marker) valid() bool {
	return m == Empty || m == AI || m == Human
}

func markerFromRune(r rune) (Marker, bool) {
	switch r {
	case 'o', 'O':
		return AI, true
	case 'x', 'X':
		return Human, true
	case '.', '-', '_':
		return Empty, true
	}
	return Empty, false
}
