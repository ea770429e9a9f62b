package models

import "sort"

// Every picture puzzle is cut into a PuzzleRows x PuzzleCols grid
const (
	PuzzleRows      = 3
	PuzzleCols      = 4
	PiecesPerPuzzle = PuzzleRows * PuzzleCols
)

// Piece is a puzzle piece coordinate
type Piece struct {
	Row int
	Col int
}

// Valid reports whether the piece lies inside the puzzle grid
func (p Piece) Valid() bool {
	return p.Row >= 0 && p.Row < PuzzleRows && p.Col >= 0 && p.Col < PuzzleCols
}

// Intn is the random source used to draw pieces; *rand.Rand satisfies it
type Intn interface {
	Intn(n int) int
}

// PuzzleProgress tracks the owned pieces of one named puzzle
type PuzzleProgress struct {
	Name  string
	owned map[Piece]struct{}
}

// NewPuzzleProgress returns progress with no pieces owned
func NewPuzzleProgress(name string) *PuzzleProgress {
	return &PuzzleProgress{Name: name, owned: make(map[Piece]struct{})}
}

// AddPiece marks a piece as owned. Out-of-grid pieces are ignored.
func (p *PuzzleProgress) AddPiece(piece Piece) bool {
	if !piece.Valid() {
		return false
	}
	if _, ok := p.owned[piece]; ok {
		return false
	}
	p.owned[piece] = struct{}{}
	return true
}

// AddRandomPiece draws one piece from those not yet owned and marks it owned.
// It returns false once the puzzle is complete.
func (p *PuzzleProgress) AddRandomPiece(rng Intn) (Piece, bool) {
	missing := p.MissingPieces()
	if len(missing) == 0 {
		return Piece{}, false
	}
	piece := missing[rng.Intn(len(missing))]
	p.owned[piece] = struct{}{}
	return piece, true
}

// MissingPieces returns the un-owned pieces in row-major order
func (p *PuzzleProgress) MissingPieces() []Piece {
	missing := make([]Piece, 0, PiecesPerPuzzle-len(p.owned))
	for row := 0; row < PuzzleRows; row++ {
		for col := 0; col < PuzzleCols; col++ {
			piece := Piece{Row: row, Col: col}
			if _, ok := p.owned[piece]; !ok {
				missing = append(missing, piece)
			}
		}
	}
	return missing
}

// OwnedPieces returns the owned pieces in row-major order
func (p *PuzzleProgress) OwnedPieces() []Piece {
	pieces := make([]Piece, 0, len(p.owned))
	for piece := range p.owned {
		pieces = append(pieces, piece)
	}
	sort.Slice(pieces, func(i, j int) bool {
		if pieces[i].Row != pieces[j].Row {
			return pieces[i].Row < pieces[j].Row
		}
		return pieces[i].Col < pieces[j].Col
	})
	return pieces
}

// IsPieceOwned reports whether the piece at row, col is owned
func (p *PuzzleProgress) IsPieceOwned(row, col int) bool {
	_, ok := p.owned[Piece{Row: row, Col: col}]
	return ok
}

// NumberOfOwnedPieces returns how many pieces are owned
func (p *PuzzleProgress) NumberOfOwnedPieces() int {
	return len(p.owned)
}

// IsComplete is derived from the owned count on every call
func (p *PuzzleProgress) IsComplete() bool {
	return len(p.owned) >= PiecesPerPuzzle
}

// Clone returns an independent copy
func (p *PuzzleProgress) Clone() *PuzzleProgress {
	c := NewPuzzleProgress(p.Name)
	for piece := range p.owned {
		c.owned[piece] = struct{}{}
	}
	return c
}

// TotalPieces is the piece count across n puzzles, used for multi-sound letters
func TotalPieces(puzzles int) int {
	return PiecesPerPuzzle * puzzles
}
