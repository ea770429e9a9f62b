package models

import "strings"

// Star is the score record for one letter, sound or word
type Star struct {
	HighScore     int
	CurrentStreak int
}

// StarKey normalizes a star key; lookups are case-insensitive
func StarKey(key string) string {
	return strings.ToLower(key)
}

// AlphabetKey returns the star key used by the alphabet game for a letter
func AlphabetKey(letter string) string {
	return StarKey("al-" + letter)
}
