package models

import (
	"errors"
	"fmt"
	"strings"
)

// CelebrationAmount is the gold count of one truck; every multiple earns a celebration
const CelebrationAmount = 125

// ErrUnknownCategory is returned for a bank category the player does not have
var ErrUnknownCategory = errors.New("unknown bank category")

// Category names a coin bank
type Category string

const (
	CategoryLetters      Category = "letters"
	CategoryPhonics      Category = "phonics"
	CategoryPreK         Category = "prek"
	CategoryKindergarten Category = "kindergarten"
	CategoryReadAWord    Category = "readAWord"
	CategorySightWords   Category = "sightWords"
)

// Categories lists every bank a player owns, in display order
var Categories = []Category{
	CategoryLetters,
	CategoryPhonics,
	CategoryPreK,
	CategoryKindergarten,
	CategoryReadAWord,
	CategorySightWords,
}

// ParseCategory resolves a category name, ignoring case
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Coins is a gold/silver pair
type Coins struct {
	Gold   int
	Silver int
}

// Bank is a per-category coin wallet
type Bank struct {
	coins              Coins
	HasSeenCelebration bool
}

// NewBank returns an empty bank
func NewBank() *Bank {
	return &Bank{}
}

// RestoreBank rebuilds a bank from stored values without touching the celebration flag
func RestoreBank(coins Coins, hasSeenCelebration bool) *Bank {
	return &Bank{coins: coins, HasSeenCelebration: hasSeenCelebration}
}

// Coins returns the current balance
func (b *Bank) Coins() Coins {
	return b.coins
}

// SetCoins replaces the balance. Reaching a new multiple of CelebrationAmount
// clears the acknowledgement so the next truck is celebrated.
func (b *Bank) SetCoins(c Coins) {
	if c.Gold/CelebrationAmount > b.coins.Gold/CelebrationAmount {
		b.HasSeenCelebration = false
	}
	b.coins = c
}

// AddGold adds n gold coins
func (b *Bank) AddGold(n int) {
	c := b.coins
	c.Gold += n
	b.SetCoins(c)
}

// AddSilver adds n silver coins
func (b *Bank) AddSilver(n int) {
	c := b.coins
	c.Silver += n
	b.SetCoins(c)
}

// Celebrate reports whether a truck has been earned and not yet shown
func (b *Bank) Celebrate() bool {
	return b.coins.Gold >= CelebrationAmount && !b.HasSeenCelebration
}

// AcknowledgeCelebration marks the current truck as shown
func (b *Bank) AcknowledgeCelebration() {
	b.HasSeenCelebration = true
}

// Trucks is the number of full celebration multiples earned
func (b *Bank) Trucks() int {
	return b.coins.Gold / CelebrationAmount
}
