package models

// CoinForAttempt returns the coin earned for a correct answer given on the
// n-th attempt: gold on the first, silver on the second, nothing after.
func CoinForAttempt(attempts int) Coins {
	switch attempts {
	case 1:
		return Coins{Gold: 1}
	case 2:
		return Coins{Silver: 1}
	default:
		return Coins{}
	}
}

// PiecesForAttempt returns how many puzzle pieces a correct answer unlocks
func PiecesForAttempt(attempts int) int {
	switch {
	case attempts >= 0 && attempts <= 1:
		return 2
	case attempts == 2:
		return 1
	default:
		return 0
	}
}

// NextStreak returns the streak after a correct answer given on the n-th
// attempt. A first-try answer extends the streak; any retry breaks it.
func NextStreak(current, attempts int) int {
	if attempts == 1 {
		return current + 1
	}
	return 0
}
