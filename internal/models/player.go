package models

import "sort"

// Player aggregates all progress of one profile. It owns its stars, banks
// and puzzles; nothing is shared between players.
type Player struct {
	ID      string
	stars   map[string]Star
	banks   map[Category]*Bank
	puzzles map[string]*PuzzleProgress
}

// NewPlayer returns the default state of a profile that has never played
func NewPlayer(id string) *Player {
	p := &Player{
		ID:      id,
		stars:   make(map[string]Star),
		banks:   make(map[Category]*Bank, len(Categories)),
		puzzles: make(map[string]*PuzzleProgress),
	}
	for _, c := range Categories {
		p.banks[c] = NewBank()
	}
	return p
}

// Stars returns the record for key, or a zero Star when there is none
func (p *Player) Stars(key string) Star {
	return p.stars[StarKey(key)]
}

// UpdateStars records a new streak value for key. The high score is replaced
// only when there is no record yet or the value beats it. Returns the
// resulting high score. Negative values count as zero.
func (p *Player) UpdateStars(key string, value int) int {
	if value < 0 {
		value = 0
	}
	k := StarKey(key)
	existing, ok := p.stars[k]
	if !ok || value > existing.HighScore {
		p.stars[k] = Star{HighScore: value, CurrentStreak: value}
	} else {
		existing.CurrentStreak = value
		p.stars[k] = existing
	}
	return p.stars[k].HighScore
}

// SetStar stores a record verbatim; used when restoring saved data
func (p *Player) SetStar(key string, s Star) {
	p.stars[StarKey(key)] = s
}

// StarKeys returns all recorded keys, sorted
func (p *Player) StarKeys() []string {
	keys := make([]string, 0, len(p.stars))
	for k := range p.stars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bank returns the bank for a category
func (p *Player) Bank(c Category) (*Bank, error) {
	b, ok := p.banks[c]
	if !ok {
		return nil, ErrUnknownCategory
	}
	return b, nil
}

// SetBank replaces the bank for a known category
func (p *Player) SetBank(c Category, b *Bank) error {
	if _, ok := p.banks[c]; !ok {
		return ErrUnknownCategory
	}
	p.banks[c] = b
	return nil
}

// Progress returns the progress for a puzzle, creating it on first access
func (p *Player) Progress(name string) *PuzzleProgress {
	if progress, ok := p.puzzles[name]; ok {
		return progress
	}
	progress := NewPuzzleProgress(name)
	p.puzzles[name] = progress
	return progress
}

// ProgressIfExists returns the progress for a puzzle without creating it
func (p *Player) ProgressIfExists(name string) (*PuzzleProgress, bool) {
	progress, ok := p.puzzles[name]
	return progress, ok
}

// PuzzleNames returns every puzzle with recorded progress, sorted
func (p *Player) PuzzleNames() []string {
	names := make([]string, 0, len(p.puzzles))
	for name := range p.puzzles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LetterProgress sums owned pieces over the puzzles of a letter's sounds.
// It returns the owned and total piece counts for a progress bar.
func (p *Player) LetterProgress(puzzleNames []string) (owned, total int) {
	for _, name := range puzzleNames {
		if progress, ok := p.puzzles[name]; ok {
			owned += progress.NumberOfOwnedPieces()
		}
	}
	return owned, TotalPieces(len(puzzleNames))
}

// Clone returns a deep copy
func (p *Player) Clone() *Player {
	c := &Player{
		ID:      p.ID,
		stars:   make(map[string]Star, len(p.stars)),
		banks:   make(map[Category]*Bank, len(p.banks)),
		puzzles: make(map[string]*PuzzleProgress, len(p.puzzles)),
	}
	for k, s := range p.stars {
		c.stars[k] = s
	}
	for cat, b := range p.banks {
		copied := *b
		c.banks[cat] = &copied
	}
	for name, progress := range p.puzzles {
		c.puzzles[name] = progress.Clone()
	}
	return c
}
