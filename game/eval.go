package game

// WinScore is the value of a won position for the AI (negated for a loss).
const WinScore = 1000

// Heuristic sums LineScore over every line of ConnectSize cells, in all four
// orientations, from the AI's perspective.
func Heuristic(b *Board) int {
	rows, cols := b.rows, b.cols
	score := 0

	// Diagonal '/'
	for r := 0; r <= rows-ConnectSize; r++ {
		for c := 0; c <= cols-ConnectSize; c++ {
			score += LineScore(b.at(r, c), b.at(r+1, c+1), b.at(r+2, c+2), b.at(r+3, c+3))
		}
	}

	// Diagonal '\'
	for r := 0; r <= rows-ConnectSize; r++ {
		for c := ConnectSize - 1; c < cols; c++ {
			score += LineScore(b.at(r, c), b.at(r+1, c-1), b.at(r+2, c-2), b.at(r+3, c-3))
		}
	}

	// Horizontal
	for r := 0; r < rows; r++ {
		for c := 0; c <= cols-ConnectSize; c++ {
			score += LineScore(b.at(r, c), b.at(r, c+1), b.at(r, c+2), b.at(r, c+3))
		}
	}

	// Vertical
	for r := 0; r <= rows-ConnectSize; r++ {
		for c := 0; c < cols; c++ {
			score += LineScore(b.at(r, c), b.at(r+1, c), b.at(r+2, c), b.at(r+3, c))
		}
	}

	return score
}

// LineScore scores a single line. Open threes of the AI weigh more than the
// matching human threes.
func LineScore(m1, m2, m3, m4 Marker) int {
	ai := count(AI, m1, m2, m3, m4)
	human := count(Human, m1, m2, m3, m4)
	empty := ConnectSize - ai - human

	switch {
	case ai == 4:
		return WinScore // Terminal boards are scored before the heuristic runs
	case human == 4:
		return -WinScore
	case ai == 3 && empty == 1:
		return 5
	case ai == 2 && empty == 2:
		return 2
	case human == 3 && empty == 1:
		return -4
	}
	return 0
}

func count(m, m1, m2, m3, m4 Marker) int {
	n := 0
	for _, x := range [ConnectSize]Marker{m1, m2, m3, m4} {
		if x == m {
			n++
		}
	}
	return n
}

// EvaluateCenter adds a preference for the center columns on top of
// Heuristic: +3 per AI piece in the center column, and +2/-2 per AI/human
// piece in each column next to it.
func EvaluateCenter(b *Board) int {
	score := Heuristic(b)
	center := b.cols / 2

	for r := 0; r < b.rows; r++ {
		if b.at(r, center) == AI {
			score += 3
		}
	}

	for _, c := range []int{center - 1, center + 1} {
		if c < 0 || c >= b.cols {
			continue
		}
		for r := 0; r < b.rows; r++ {
			switch b.at(r, c) {
			case AI:
				score += 2
			case Human:
				score -= 2
			}
		}
	}
	return score
}
