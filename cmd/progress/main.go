package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"phonics/internal/config"
	"phonics/internal/models"
	"phonics/internal/repository"
	"phonics/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	store, closeStore, err := repository.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := run(os.Args[1:], store, cfg.ProfileID, rng, os.Stdout); err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func run(args []string, store repository.KeyValueStore, profileID string, rng models.Intn, out io.Writer) error {
	command, rest := args[0], args[1:]

	switch command {
	case "profiles":
		ids, err := service.ListProfiles(store)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		return nil

	case "new-profile":
		id := uuid.NewString()
		if err := service.SavePlayer(store, models.NewPlayer(id)); err != nil {
			return err
		}
		fmt.Fprintln(out, id)
		return nil
	}

	players := service.OpenPlayerStore(store, profileID, rng)

	switch command {
	case "show":
		printPlayer(out, players.Player())
		return nil

	case "stars":
		if len(rest) != 2 {
			return fmt.Errorf("usage: stars <key> <value>")
		}
		value, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", rest[1], err)
		}
		highScore, err := players.UpdateStars(rest[0], value)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: high score %d, streak %d\n", models.StarKey(rest[0]), highScore, value)
		return nil

	case "streak":
		if len(rest) != 2 {
			return fmt.Errorf("usage: streak <key> <attempts>")
		}
		attempts, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid attempts %q: %w", rest[1], err)
		}
		star, err := players.RecordStreak(rest[0], attempts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: high score %d, streak %d\n", models.StarKey(rest[0]), star.HighScore, star.CurrentStreak)
		return nil

	case "award":
		if len(rest) != 2 {
			return fmt.Errorf("usage: award <category> <attempts>")
		}
		category, err := models.ParseCategory(rest[0])
		if err != nil {
			return err
		}
		attempts, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid attempts %q: %w", rest[1], err)
		}
		coins, celebrate, err := players.RecordAnswer(category, attempts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: +%d gold, +%d silver\n", category, coins.Gold, coins.Silver)
		if celebrate {
			fmt.Fprintf(out, "%s: new truck earned!\n", category)
		}
		return nil

	case "ack":
		if len(rest) != 1 {
			return fmt.Errorf("usage: ack <category>")
		}
		category, err := models.ParseCategory(rest[0])
		if err != nil {
			return err
		}
		return players.AcknowledgeCelebration(category)

	case "piece":
		if len(rest) != 2 {
			return fmt.Errorf("usage: piece <puzzle> <attempts>")
		}
		attempts, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid attempts %q: %w", rest[1], err)
		}
		pieces, completed, err := players.AddPuzzlePieces(rest[0], attempts)
		if err != nil {
			return err
		}
		for _, piece := range pieces {
			fmt.Fprintf(out, "%s: piece (%d,%d)\n", rest[0], piece.Row, piece.Col)
		}
		if completed {
			fmt.Fprintf(out, "%s: puzzle complete!\n", rest[0])
		}
		return nil

	case "letter":
		if len(rest) == 0 {
			return fmt.Errorf("usage: letter <puzzle>...")
		}
		owned, total := players.Player().LetterProgress(rest)
		fmt.Fprintf(out, "%d/%d pieces\n", owned, total)
		return nil

	case "reset":
		return players.Reset()

	case "delete":
		return players.Delete()
	}

	printUsage(out)
	return fmt.Errorf("unknown command %q", command)
}

func printPlayer(out io.Writer, p *models.Player) {
	fmt.Fprintf(out, "Profile: %s\n", p.ID)

	fmt.Fprintln(out, "Stars:")
	for _, key := range p.StarKeys() {
		s := p.Stars(key)
		fmt.Fprintf(out, "  %-16s high %d, streak %d\n", key, s.HighScore, s.CurrentStreak)
	}

	fmt.Fprintln(out, "Banks:")
	for _, c := range models.Categories {
		b, err := p.Bank(c)
		if err != nil {
			continue
		}
		coins := b.Coins()
		marker := ""
		if b.Celebrate() {
			marker = " (celebration pending)"
		}
		fmt.Fprintf(out, "  %-16s gold %d, silver %d%s\n", c, coins.Gold, coins.Silver, marker)
	}

	fmt.Fprintln(out, "Puzzles:")
	for _, name := range p.PuzzleNames() {
		progress, _ := p.ProgressIfExists(name)
		fmt.Fprintf(out, "  %-16s %d/%d\n", name, progress.NumberOfOwnedPieces(), models.PiecesPerPuzzle)
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Phonics Progress Tool")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  progress show                        Print the current profile")
	fmt.Fprintln(out, "  progress profiles                    List saved profiles")
	fmt.Fprintln(out, "  progress new-profile                 Create an empty profile with a new id")
	fmt.Fprintln(out, "  progress stars <key> <value>         Record a star streak")
	fmt.Fprintln(out, "  progress streak <key> <attempts>     Apply a correct answer to a star streak")
	fmt.Fprintln(out, "  progress award <category> <attempts> Pay the coin for a correct answer")
	fmt.Fprintln(out, "  progress ack <category>              Acknowledge a bank celebration")
	fmt.Fprintln(out, "  progress piece <puzzle> <attempts>   Unlock puzzle pieces for a correct answer")
	fmt.Fprintln(out, "  progress letter <puzzle>...          Show piece progress across puzzles")
	fmt.Fprintln(out, "  progress reset                       Reset the current profile")
	fmt.Fprintln(out, "  progress delete                      Delete the current profile")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment Variables:")
	fmt.Fprintln(out, "  PROFILE_ID       Profile to operate on (default: defaultPlayer-2)")
	fmt.Fprintln(out, "  STORE_TYPE       sqlite, postgres, mysql, gdata or memory (default: sqlite)")
}
