package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"phonics/internal/archive"
	"phonics/internal/models"
	"phonics/internal/repository"
)

const (
	playerKeyPrefix = "player."

	// SavedRecentlyKey is a diagnostic marker written with every save
	SavedRecentlyKey = "has been saved recently"
)

// PlayerKey returns the storage key of a profile
func PlayerKey(id string) string {
	return playerKeyPrefix + id
}

// LoadPlayer reads a profile from the store. Missing or unreadable data is
// reported as found=false; the caller starts a fresh player in that case.
func LoadPlayer(store repository.KeyValueStore, id string) (*models.Player, bool) {
	key := PlayerKey(id)

	if marker, found, err := store.Get(SavedRecentlyKey); err == nil {
		log.Printf("[PlayerStore] has been saved recently: %v", found && string(marker) == "true")
	}

	data, found, err := store.Get(key)
	if err != nil {
		log.Printf("[PlayerStore] Failed to read %s: %v", key, err)
		return nil, false
	}
	if !found {
		log.Printf("[PlayerStore] No data for %s", key)
		return nil, false
	}

	player, err := archive.Decode(data, id)
	if err != nil {
		log.Printf("[PlayerStore] Failed to decode %s: %v", key, err)
		return nil, false
	}
	return player, true
}

// SavePlayer writes the whole aggregate under its profile key
func SavePlayer(store repository.KeyValueStore, p *models.Player) error {
	data, err := archive.Encode(p)
	if err != nil {
		return err
	}

	if err := store.Set(SavedRecentlyKey, []byte("true")); err != nil {
		return fmt.Errorf("failed to write save marker: %w", err)
	}
	if err := store.Set(PlayerKey(p.ID), data); err != nil {
		return fmt.Errorf("failed to save player %s: %w", p.ID, err)
	}
	return nil
}

// ListProfiles returns the ids of every saved profile
func ListProfiles(store repository.KeyValueStore) ([]string, error) {
	keys, err := store.Keys(playerKeyPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, playerKeyPrefix))
	}
	return ids, nil
}

// PlayerStore owns the current player and commits it after every
// reward-relevant mutation. Components receive the store instead of reaching
// for a global.
type PlayerStore struct {
	mu     sync.Mutex
	store  repository.KeyValueStore
	rng    models.Intn
	player *models.Player
}

// OpenPlayerStore loads profile id, falling back to a fresh player
func OpenPlayerStore(store repository.KeyValueStore, id string, rng models.Intn) *PlayerStore {
	player, found := LoadPlayer(store, id)
	if !found {
		player = models.NewPlayer(id)
	}
	return &PlayerStore{store: store, rng: rng, player: player}
}

// ID returns the current profile id
func (s *PlayerStore) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.ID
}

// Player returns a copy of the current aggregate
func (s *PlayerStore) Player() *models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Clone()
}

// Save writes the current player
func (s *PlayerStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit()
}

// commit must be called with mu held
func (s *PlayerStore) commit() error {
	if err := SavePlayer(s.store, s.player); err != nil {
		log.Printf("[PlayerStore] Save failed: %v", err)
		return err
	}
	return nil
}

// Stars returns the record for key
func (s *PlayerStore) Stars(key string) models.Star {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Stars(key)
}

// UpdateStars records a quiz result for key and saves. It returns the high score.
func (s *PlayerStore) UpdateStars(key string, value int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	highScore := s.player.UpdateStars(key, value)
	return highScore, s.commit()
}

// RecordStreak applies a correct answer given on the n-th attempt to the
// streak for key and saves. It returns the resulting star record.
func (s *PlayerStore) RecordStreak(key string, attempts int) (models.Star, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	streak := models.NextStreak(s.player.Stars(key).CurrentStreak, attempts)
	s.player.UpdateStars(key, streak)
	return s.player.Stars(key), s.commit()
}

// Bank returns a copy of a category's bank
func (s *PlayerStore) Bank(c models.Category) (models.Bank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.player.Bank(c)
	if err != nil {
		return models.Bank{}, err
	}
	return *b, nil
}

// AwardCoins adds coins to a bank and saves. It reports whether a
// celebration is now due.
func (s *PlayerStore) AwardCoins(c models.Category, coins models.Coins) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.player.Bank(c)
	if err != nil {
		return false, err
	}
	balance := b.Coins()
	b.SetCoins(models.Coins{Gold: balance.Gold + coins.Gold, Silver: balance.Silver + coins.Silver})
	return b.Celebrate(), s.commit()
}

// RecordAnswer pays out the coin for a correct answer given on the n-th
// attempt. Nothing is saved when the answer earns no coin.
func (s *PlayerStore) RecordAnswer(c models.Category, attempts int) (models.Coins, bool, error) {
	coins := models.CoinForAttempt(attempts)
	if coins == (models.Coins{}) {
		b, err := s.Bank(c)
		if err != nil {
			return coins, false, err
		}
		return coins, b.Celebrate(), nil
	}

	celebrate, err := s.AwardCoins(c, coins)
	return coins, celebrate, err
}

// AcknowledgeCelebration marks a bank's celebration as shown and saves
func (s *PlayerStore) AcknowledgeCelebration(c models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.player.Bank(c)
	if err != nil {
		return err
	}
	b.AcknowledgeCelebration()
	return s.commit()
}

// Progress returns a copy of a puzzle's progress without creating it
func (s *PlayerStore) Progress(name string) (*models.PuzzleProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	progress, ok := s.player.ProgressIfExists(name)
	if !ok {
		return nil, false
	}
	return progress.Clone(), true
}

// AddPuzzlePieces unlocks the pieces earned by a correct answer on the n-th
// attempt and saves. completed is true only when this call finished the puzzle.
func (s *PlayerStore) AddPuzzlePieces(name string, attempts int) (pieces []models.Piece, completed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress := s.player.Progress(name)
	wasComplete := progress.IsComplete()

	for i := 0; i < models.PiecesForAttempt(attempts); i++ {
		piece, ok := progress.AddRandomPiece(s.rng)
		if !ok {
			break
		}
		pieces = append(pieces, piece)
	}

	completed = !wasComplete && progress.IsComplete()
	return pieces, completed, s.commit()
}

// Reset replaces the current player with a fresh one and saves it
func (s *PlayerStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.player = models.NewPlayer(s.player.ID)
	return s.commit()
}

// Delete removes the stored profile; the in-memory player is reset
func (s *PlayerStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(PlayerKey(s.player.ID)); err != nil {
		return err
	}
	s.player = models.NewPlayer(s.player.ID)
	return nil
}

// IsUnknownCategory reports whether err came from an unknown bank category
func IsUnknownCategory(err error) bool {
	return errors.Is(err, models.ErrUnknownCategory)
}
