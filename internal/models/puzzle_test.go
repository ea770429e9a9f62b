package models

import (
	"math/rand"
	"testing"
)

type fixedIntn int

func (f fixedIntn) Intn(n int) int {
	return int(f) % n
}

func TestAddRandomPieceFillsPuzzle(t *testing.T) {
	progress := NewPuzzleProgress("ah")
	rng := rand.New(rand.NewSource(42))
	seen := make(map[Piece]bool)

	for i := 0; i < PiecesPerPuzzle; i++ {
		if progress.IsComplete() {
			t.Fatalf("complete after only %d pieces", i)
		}
		piece, ok := progress.AddRandomPiece(rng)
		if !ok {
			t.Fatalf("AddRandomPiece failed at piece %d", i)
		}
		if !piece.Valid() {
			t.Fatalf("piece %+v outside grid", piece)
		}
		if seen[piece] {
			t.Fatalf("piece %+v drawn twice", piece)
		}
		seen[piece] = true
		if !progress.IsPieceOwned(piece.Row, piece.Col) {
			t.Fatalf("piece %+v not marked owned", piece)
		}
	}

	if !progress.IsComplete() {
		t.Fatal("expected complete puzzle")
	}
	if _, ok := progress.AddRandomPiece(rng); ok {
		t.Error("AddRandomPiece should return false once complete")
	}
	if n := progress.NumberOfOwnedPieces(); n != PiecesPerPuzzle {
		t.Errorf("NumberOfOwnedPieces() = %d, want %d", n, PiecesPerPuzzle)
	}
}

func TestAddRandomPieceDrawsFromDeficit(t *testing.T) {
	progress := NewPuzzleProgress("ah")
	for _, p := range []Piece{{0, 0}, {0, 1}, {0, 2}} {
		progress.AddPiece(p)
	}

	piece, ok := progress.AddRandomPiece(fixedIntn(0))
	if !ok {
		t.Fatal("expected a piece")
	}
	if piece != (Piece{Row: 0, Col: 3}) {
		t.Errorf("piece = %+v, want first missing {0 3}", piece)
	}
}

func TestAddPieceRejectsInvalid(t *testing.T) {
	progress := NewPuzzleProgress("ah")
	tests := []struct {
		piece Piece
		want  bool
	}{
		{Piece{Row: 0, Col: 0}, true},
		{Piece{Row: 0, Col: 0}, false},
		{Piece{Row: PuzzleRows, Col: 0}, false},
		{Piece{Row: 0, Col: -1}, false},
	}
	for _, tt := range tests {
		if got := progress.AddPiece(tt.piece); got != tt.want {
			t.Errorf("AddPiece(%+v) = %v, want %v", tt.piece, got, tt.want)
		}
	}
	if n := progress.NumberOfOwnedPieces(); n != 1 {
		t.Errorf("NumberOfOwnedPieces() = %d, want 1", n)
	}
}

func TestOwnedAndMissingPieces(t *testing.T) {
	progress := NewPuzzleProgress("ah")
	progress.AddPiece(Piece{Row: 2, Col: 1})
	progress.AddPiece(Piece{Row: 0, Col: 3})

	owned := progress.OwnedPieces()
	if len(owned) != 2 || owned[0] != (Piece{0, 3}) || owned[1] != (Piece{2, 1}) {
		t.Errorf("OwnedPieces() = %v", owned)
	}
	if n := len(progress.MissingPieces()); n != PiecesPerPuzzle-2 {
		t.Errorf("len(MissingPieces()) = %d, want %d", n, PiecesPerPuzzle-2)
	}
}

func TestRewardTables(t *testing.T) {
	tests := []struct {
		attempts int
		coins    Coins
		pieces   int
	}{
		{0, Coins{}, 2},
		{1, Coins{Gold: 1}, 2},
		{2, Coins{Silver: 1}, 1},
		{3, Coins{}, 0},
		{7, Coins{}, 0},
	}
	for _, tt := range tests {
		if got := CoinForAttempt(tt.attempts); got != tt.coins {
			t.Errorf("CoinForAttempt(%d) = %+v, want %+v", tt.attempts, got, tt.coins)
		}
		if got := PiecesForAttempt(tt.attempts); got != tt.pieces {
			t.Errorf("PiecesForAttempt(%d) = %d, want %d", tt.attempts, got, tt.pieces)
		}
	}
}

func TestNextStreak(t *testing.T) {
	tests := []struct {
		current, attempts, want int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{4, 2, 0},
		{4, 3, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := NextStreak(tt.current, tt.attempts); got != tt.want {
			t.Errorf("NextStreak(%d, %d) = %d, want %d", tt.current, tt.attempts, got, tt.want)
		}
	}
}
