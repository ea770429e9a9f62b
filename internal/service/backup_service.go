package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"phonics/internal/archive"
	"phonics/internal/repository"
)

// BackupVersion is the format version written by Export
const BackupVersion = "1.0"

// BackupData represents the complete backup structure
type BackupData struct {
	Version    string         `json:"version"`
	BackupID   string         `json:"backup_id"`
	ExportedAt time.Time      `json:"exported_at"`
	StoreType  string         `json:"store_type"`
	Players    []PlayerBackup `json:"players"`
}

// PlayerBackup holds one profile's stored blob
type PlayerBackup struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

// ImportResult summarizes an import
type ImportResult struct {
	Imported int
	Skipped  int
}

// BackupService copies every saved profile to and from a JSON file
type BackupService struct {
	store     repository.KeyValueStore
	storeType string
}

// NewBackupService creates a new backup service
func NewBackupService(store repository.KeyValueStore, storeType string) *BackupService {
	return &BackupService{store: store, storeType: storeType}
}

// Export writes all profiles to outputPath
func (s *BackupService) Export(outputPath string) (*BackupData, error) {
	log.Println("Starting export...")

	backup := &BackupData{
		Version:    BackupVersion,
		BackupID:   uuid.NewString(),
		ExportedAt: time.Now(),
		StoreType:  s.storeType,
		Players:    []PlayerBackup{},
	}

	ids, err := ListProfiles(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	for _, id := range ids {
		data, found, err := s.store.Get(PlayerKey(id))
		if err != nil {
			return nil, fmt.Errorf("failed to read profile %s: %w", id, err)
		}
		if !found {
			continue
		}
		backup.Players = append(backup.Players, PlayerBackup{ID: id, Data: string(data)})
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported %d profiles to %s (backup %s)", len(backup.Players), outputPath, backup.BackupID)
	return backup, nil
}

// Import restores profiles from inputPath. Entries that do not decode as a
// player are skipped. With clearExisting set, existing profiles are removed first.
func (s *BackupService) Import(inputPath string, clearExisting bool) (*ImportResult, error) {
	log.Printf("Starting import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}

	if clearExisting {
		if err := s.clearProfiles(); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{}
	for _, entry := range backup.Players {
		if entry.ID == "" {
			result.Skipped++
			continue
		}
		player, err := archive.Decode([]byte(entry.Data), entry.ID)
		if err != nil {
			log.Printf("Skipping profile %s: %v", entry.ID, err)
			result.Skipped++
			continue
		}
		player.ID = entry.ID
		if err := SavePlayer(s.store, player); err != nil {
			return result, fmt.Errorf("failed to import profile %s: %w", entry.ID, err)
		}
		result.Imported++
	}

	log.Printf("Imported %d profiles, skipped %d", result.Imported, result.Skipped)
	return result, nil
}

func (s *BackupService) clearProfiles() error {
	ids, err := ListProfiles(s.store)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	for _, id := range ids {
		if err := s.store.Delete(PlayerKey(id)); err != nil {
			return fmt.Errorf("failed to clear profile %s: %w", id, err)
		}
		log.Printf("Cleared profile: %s", id)
	}
	return nil
}
