package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Board is a Connect-Four grid. Row 0 is the bottom row. heights[c] is the
// next free row of column c and always equals the number of pieces in it.
//
// Boards are values: searches work on their own copy (Clone or CopyFrom) and
// never share cells with a sibling branch.
type Board struct {
	rows    int
	cols    int
	cells   []Marker // Row-major, indexed by row*cols + col
	heights []int
}

func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", rows, cols))
	}
	return &Board{
		rows:    rows,
		cols:    cols,
		cells:   make([]Marker, rows*cols),
		heights: make([]int, cols),
	}
}

func NewDefaultBoard() *Board {
	return NewBoard(DefaultRows, DefaultCols)
}

// NewBoardFromGrid seeds a board from an explicit grid, grid[0] being the
// bottom row. Fill heights are derived by scanning each column from the bottom.
func NewBoardFromGrid(grid [][]Marker) (*Board, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, errors.WithMessage(ErrInvalidGrid, "grid is empty")
	}
	b := NewBoard(len(grid), len(grid[0]))
	for r, row := range grid {
		if len(row) != b.cols {
			return nil, errors.WithMessagef(ErrInvalidGrid, "row %d has %d columns, want %d", r, len(row), b.cols)
		}
		for c, m := range row {
			if !m.valid() {
				return nil, errors.WithMessagef(ErrInvalidGrid, "row %d column %d holds unknown marker %d", r, c, m)
			}
			b.cells[r*b.cols+c] = m
		}
	}

	for c := 0; c < b.cols; c++ {
		r := 0
		for r < b.rows && b.at(r, c) != Empty {
			r++
		}
		b.heights[c] = r
		// A piece above the first hole would break the height invariant
		for above := r + 1; above < b.rows; above++ {
			if b.at(above, c) != Empty {
				return nil, errors.WithMessagef(ErrInvalidGrid, "piece floating at row %d column %d", above, c)
			}
		}
	}
	return b, nil
}

// ParseBoard reads a board drawn top row first, one string per row, using
// 'o' for AI, 'x' for human and '.' for empty cells. Spaces are ignored.
func ParseBoard(lines ...string) (*Board, error) {
	grid := make([][]Marker, len(lines))
	for i, line := range lines {
		row := []Marker{}
		for _, r := range line {
			if r == ' ' || r == '\t' {
				continue
			}
			m, ok := markerFromRune(r)
			if !ok {
				return nil, errors.WithMessagef(ErrInvalidGrid, "line %d: unexpected character %q", i+1, r)
			}
			row = append(row, m)
		}
		// Flip so that the last line becomes row 0
		grid[len(lines)-1-i] = row
	}
	b, err := NewBoardFromGrid(grid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse board")
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures known to be valid.
func MustParseBoard(lines ...string) *Board {
	b, err := ParseBoard(lines...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) Dimensions() (rows, cols int) {
	return b.rows, b.cols
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) At(row, col int) Marker {
	return b.at(row, col)
}

func (b *Board) at(row, col int) Marker {
	return b.cells[row*b.cols+col]
}

// Height returns the next free row of a column.
func (b *Board) Height(col int) int {
	return b.heights[col]
}

func (b *Board) Pieces() int {
	n := 0
	for _, h := range b.heights {
		n += h
	}
	return n
}

func (b *Board) Clone() *Board {
	clone := &Board{
		rows:    b.rows,
		cols:    b.cols,
		cells:   make([]Marker, len(b.cells)),
		heights: make([]int, len(b.heights)),
	}
	copy(clone.cells, b.cells)
	copy(clone.heights, b.heights)
	return clone
}

// CopyFrom overwrites b with src, reusing b's storage when it is big enough.
func (b *Board) CopyFrom(src *Board) {
	b.rows, b.cols = src.rows, src.cols
	if cap(b.cells) < len(src.cells) {
		b.cells = make([]Marker, len(src.cells))
	}
	b.cells = b.cells[:len(src.cells)]
	copy(b.cells, src.cells)
	if cap(b.heights) < len(src.heights) {
		b.heights = make([]int, len(src.heights))
	}
	b.heights = b.heights[:len(src.heights)]
	copy(b.heights, src.heights)
}

func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Winner returns the marker owning a line of ConnectSize, or Empty. Lines are
// scanned diagonal '/', diagonal '\', horizontal, then vertical.
func (b *Board) Winner() Marker {
	rows, cols := b.rows, b.cols

	// Diagonal '/'
	for r := 0; r <= rows-ConnectSize; r++ {
		for c := 0; c <= cols-ConnectSize; c++ {
			m := b.at(r, c)
			if m != Empty && m == b.at(r+1, c+1) && m == b.at(r+2, c+2) && m == b.at(r+3, c+3) {
				return m
			}
		}
	}

	// Diagonal '\'
	for r := 0; r <= rows-ConnectSize; r++ {
		for c := ConnectSize - 1; c < cols; c++ {
			m := b.at(r, c)
			if m != Empty && m == b.at(r+1, c-1) && m == b.at(r+2, c-2) && m == b.at(r+3, c-3) {
				return m
			}
		}
	}

	// Horizontal
	for r := 0; r < rows; r++ {
		for c := 0; c <= cols-ConnectSize; c++ {
			m := b.at(r, c)
			if m != Empty && m == b.at(r, c+1) && m == b.at(r, c+2) && m == b.at(r, c+3) {
				return m
			}
		}
	}

	// Vertical
	for r := 0; r <= rows-ConnectSize; r++ {
		for c := 0; c < cols; c++ {
			m := b.at(r, c)
			if m != Empty && m == b.at(r+1, c) && m == b.at(r+2, c) && m == b.at(r+3, c) {
				return m
			}
		}
	}

	return Empty
}

// DropPiece places m in the lowest free cell of col. It reports false and
// leaves the board untouched when the column is full or does not exist.
func (b *Board) DropPiece(col int, m Marker) bool {
	if col < 0 || col >= b.cols || m == Empty || !m.valid() {
		return false
	}
	row := b.heights[col]
	if row >= b.rows {
		return false
	}
	b.cells[row*b.cols+col] = m
	b.heights[col]++
	return true
}

func (b *Board) IsLegal(col int) bool {
	return col >= 0 && col < b.cols && b.heights[col] < b.rows
}

func (b *Board) HasLegalMove() bool {
	for _, h := range b.heights {
		if h < b.rows {
			return true
		}
	}
	return false
}

// LegalMoves appends the playable columns to dst in ascending order.
func (b *Board) LegalMoves(dst []int) []int {
	for c, h := range b.heights {
		if h < b.rows {
			dst = append(dst, c)
		}
	}
	return dst
}

func (b *Board) LegalMoveCount() int {
	n := 0
	for _, h := range b.heights {
		if h < b.rows {
			n++
		}
	}
	return n
}

func (b *Board) IsTerminal() bool {
	return b.Winner() != Empty || !b.HasLegalMove()
}

func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	for i := range b.heights {
		b.heights[i] = 0
	}
}

// FlipMarkers swaps AI and human pieces in place.
func (b *Board) FlipMarkers() {
	for i, m := range b.cells {
		b.cells[i] = m.Opponent()
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	for c := 0; c < b.cols; c++ {
		fmt.Fprintf(&sb, "%d ", c%10)
	}
	sb.WriteByte('\n')
	for r := b.rows - 1; r >= 0; r-- {
		for c := 0; c < b.cols; c++ {
			sb.WriteString(b.at(r, c).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
