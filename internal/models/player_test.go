package models

import (
	"errors"
	"testing"
)

func TestStarsDefaultToZero(t *testing.T) {
	p := NewPlayer("p1")
	for _, key := range []string{"a", "ah", "al-b", "apple", ""} {
		if got := p.Stars(key); got != (Star{}) {
			t.Errorf("Stars(%q) = %+v, want zero", key, got)
		}
	}
}

func TestUpdateStarsKeepsMaximum(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   int
	}{
		{"single", []int{3}, 3},
		{"increasing", []int{1, 2, 5}, 5},
		{"decreasing", []int{5, 2, 1}, 5},
		{"mixed", []int{2, 7, 0, 4, 6}, 7},
		{"zeros", []int{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("p1")
			var got int
			for _, v := range tt.values {
				got = p.UpdateStars("ah", v)
			}
			if got != tt.want {
				t.Errorf("UpdateStars returned %d, want %d", got, tt.want)
			}
			if hs := p.Stars("ah").HighScore; hs != tt.want {
				t.Errorf("HighScore = %d, want %d", hs, tt.want)
			}
			last := tt.values[len(tt.values)-1]
			if streak := p.Stars("ah").CurrentStreak; streak != last {
				t.Errorf("CurrentStreak = %d, want %d", streak, last)
			}
		})
	}
}

func TestUpdateStarsScenario(t *testing.T) {
	p := NewPlayer("p1")

	if hs := p.UpdateStars("ah", 3); hs != 3 {
		t.Fatalf("first update high score = %d, want 3", hs)
	}
	if hs := p.UpdateStars("ah", 2); hs != 3 {
		t.Fatalf("second update high score = %d, want 3", hs)
	}
	if got := p.Stars("ah"); got != (Star{HighScore: 3, CurrentStreak: 2}) {
		t.Errorf("Stars(ah) = %+v, want {3 2}", got)
	}
}

func TestUpdateStarsCaseInsensitive(t *testing.T) {
	p := NewPlayer("p1")
	p.UpdateStars("A", 5)

	if hs := p.Stars("a").HighScore; hs != 5 {
		t.Errorf("Stars(a).HighScore = %d, want 5", hs)
	}
	if keys := p.StarKeys(); len(keys) != 1 || keys[0] != "a" {
		t.Errorf("StarKeys() = %v, want [a]", keys)
	}
}

func TestUpdateStarsNegativeClamped(t *testing.T) {
	p := NewPlayer("p1")
	if hs := p.UpdateStars("x", -4); hs != 0 {
		t.Errorf("high score = %d, want 0", hs)
	}
}

func TestAlphabetKey(t *testing.T) {
	if got := AlphabetKey("B"); got != "al-b" {
		t.Errorf("AlphabetKey(B) = %q, want al-b", got)
	}
}

func TestNewPlayerHasAllBanks(t *testing.T) {
	p := NewPlayer("p1")
	for _, c := range Categories {
		b, err := p.Bank(c)
		if err != nil {
			t.Fatalf("Bank(%s) error: %v", c, err)
		}
		if b.Coins() != (Coins{}) {
			t.Errorf("Bank(%s) = %+v, want empty", c, b.Coins())
		}
	}

	if _, err := p.Bank("arcade"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Bank(arcade) error = %v, want ErrUnknownCategory", err)
	}
}

func TestProgressCreatesOnAccess(t *testing.T) {
	p := NewPlayer("p1")

	if _, ok := p.ProgressIfExists("ah"); ok {
		t.Fatal("ProgressIfExists should not find an untouched puzzle")
	}

	progress := p.Progress("ah")
	progress.AddPiece(Piece{Row: 0, Col: 0})

	again, ok := p.ProgressIfExists("ah")
	if !ok || again != progress {
		t.Fatal("Progress should return the same instance on later access")
	}
	if names := p.PuzzleNames(); len(names) != 1 || names[0] != "ah" {
		t.Errorf("PuzzleNames() = %v, want [ah]", names)
	}
}

func TestLetterProgress(t *testing.T) {
	p := NewPlayer("p1")
	p.Progress("a-apple").AddPiece(Piece{Row: 0, Col: 0})
	p.Progress("a-apple").AddPiece(Piece{Row: 0, Col: 1})
	p.Progress("a-acorn").AddPiece(Piece{Row: 2, Col: 3})

	owned, total := p.LetterProgress([]string{"a-apple", "a-acorn", "a-ant"})
	if owned != 3 {
		t.Errorf("owned = %d, want 3", owned)
	}
	if total != 36 {
		t.Errorf("total = %d, want 36", total)
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := NewPlayer("p1")
	p.UpdateStars("a", 2)
	bank, _ := p.Bank(CategoryLetters)
	bank.AddGold(3)
	p.Progress("ah").AddPiece(Piece{Row: 1, Col: 1})

	c := p.Clone()
	p.UpdateStars("a", 9)
	bank.AddGold(1)
	p.Progress("ah").AddPiece(Piece{Row: 1, Col: 2})

	if hs := c.Stars("a").HighScore; hs != 2 {
		t.Errorf("clone star = %d, want 2", hs)
	}
	cb, _ := c.Bank(CategoryLetters)
	if cb.Coins().Gold != 3 {
		t.Errorf("clone gold = %d, want 3", cb.Coins().Gold)
	}
	if n := c.Progress("ah").NumberOfOwnedPieces(); n != 1 {
		t.Errorf("clone pieces = %d, want 1", n)
	}
}
