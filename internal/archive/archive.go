// Package archive converts a Player to and from the stored blob.
//
// The blob is a YAML document whose fields are all optional. Decoding works
// field by field: a missing or malformed field falls back to its default and
// unknown fields are ignored, so blobs written by older or newer builds load.
package archive

import (
	"errors"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"phonics/internal/models"
)

// CurrentVersion is written into every blob
const CurrentVersion = 1

// ErrCorrupt means the blob is not a player document at all
var ErrCorrupt = errors.New("corrupt player data")

type playerDoc struct {
	Version int                   `yaml:"version"`
	ID      string                `yaml:"id"`
	Stars   map[string]starDoc    `yaml:"stars"`
	Banks   map[string]bankDoc    `yaml:"banks"`
	Puzzles map[string][]pieceDoc `yaml:"puzzles"`
}

type starDoc struct {
	HighScore     int `yaml:"highScore"`
	CurrentStreak int `yaml:"currentStreak"`
}

type bankDoc struct {
	Gold               int  `yaml:"gold"`
	Silver             int  `yaml:"silver"`
	HasSeenCelebration bool `yaml:"hasSeenCelebration"`
}

type pieceDoc struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Encode serializes the whole player aggregate
func Encode(p *models.Player) ([]byte, error) {
	doc := playerDoc{
		Version: CurrentVersion,
		ID:      p.ID,
		Stars:   make(map[string]starDoc),
		Banks:   make(map[string]bankDoc, len(models.Categories)),
		Puzzles: make(map[string][]pieceDoc),
	}

	for _, key := range p.StarKeys() {
		s := p.Stars(key)
		doc.Stars[key] = starDoc{HighScore: s.HighScore, CurrentStreak: s.CurrentStreak}
	}

	for _, c := range models.Categories {
		b, err := p.Bank(c)
		if err != nil {
			return nil, err
		}
		coins := b.Coins()
		doc.Banks[string(c)] = bankDoc{Gold: coins.Gold, Silver: coins.Silver, HasSeenCelebration: b.HasSeenCelebration}
	}

	for _, name := range p.PuzzleNames() {
		progress, _ := p.ProgressIfExists(name)
		pieces := make([]pieceDoc, 0, progress.NumberOfOwnedPieces())
		for _, piece := range progress.OwnedPieces() {
			pieces = append(pieces, pieceDoc{Row: piece.Row, Col: piece.Col})
		}
		doc.Puzzles[name] = pieces
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal player %s: %w", p.ID, err)
	}
	return data, nil
}

// Decode rebuilds a player from a blob. fallbackID is used when the blob has
// no id. Only a blob that is not a YAML mapping fails; every other problem
// degrades to defaults for the affected field.
func Decode(data []byte, fallbackID string) (*models.Player, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, ErrCorrupt
	}

	fields := mappingFields(root.Content[0])

	var version int
	decodeField(fields, "version", &version)
	if version > CurrentVersion {
		log.Printf("[archive] Player blob version %d is newer than %d, reading known fields", version, CurrentVersion)
	}

	id := fallbackID
	var storedID string
	if decodeField(fields, "id", &storedID) && storedID != "" {
		id = storedID
	}
	p := models.NewPlayer(id)

	if node, ok := fields["stars"]; ok && node.Kind == yaml.MappingNode {
		stars := make(map[string]models.Star)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, starNode := node.Content[i].Value, node.Content[i+1]
			if starNode.Kind != yaml.MappingNode {
				log.Printf("[archive] Ignoring malformed star %s", key)
				continue
			}
			starFields := mappingFields(starNode)
			var s models.Star
			decodeField(starFields, "highScore", &s.HighScore)
			decodeField(starFields, "currentStreak", &s.CurrentStreak)
			s.HighScore = max(s.HighScore, 0)
			s.CurrentStreak = max(s.CurrentStreak, 0)

			// Keys differing only in case collapse into one record; the better one wins
			k := models.StarKey(key)
			if existing, dup := stars[k]; dup && !betterStar(s, existing) {
				continue
			}
			stars[k] = s
		}
		for k, s := range stars {
			p.SetStar(k, s)
		}
	}

	if node, ok := fields["banks"]; ok && node.Kind == yaml.MappingNode {
		for name, bankNode := range mappingFields(node) {
			c, err := models.ParseCategory(name)
			if err != nil {
				continue
			}
			if bankNode.Kind != yaml.MappingNode {
				log.Printf("[archive] Ignoring malformed %s bank", name)
				continue
			}
			bankFields := mappingFields(bankNode)
			var coins models.Coins
			var seen bool
			decodeField(bankFields, "gold", &coins.Gold)
			decodeField(bankFields, "silver", &coins.Silver)
			decodeField(bankFields, "hasSeenCelebration", &seen)
			p.SetBank(c, models.RestoreBank(coins, seen))
		}
	}

	if node, ok := fields["puzzles"]; ok && node.Kind == yaml.MappingNode {
		for name, piecesNode := range mappingFields(node) {
			if piecesNode.Kind != yaml.SequenceNode {
				log.Printf("[archive] Ignoring malformed puzzle %s", name)
				continue
			}
			progress := p.Progress(name)
			for _, pieceNode := range piecesNode.Content {
				if pieceNode.Kind != yaml.MappingNode {
					continue
				}
				pieceFields := mappingFields(pieceNode)
				var piece models.Piece
				if !decodeField(pieceFields, "row", &piece.Row) || !decodeField(pieceFields, "col", &piece.Col) {
					continue
				}
				if !piece.Valid() {
					log.Printf("[archive] Ignoring out of range piece (%d,%d) in puzzle %s", piece.Row, piece.Col, name)
					continue
				}
				progress.AddPiece(piece)
			}
		}
	}

	return p, nil
}

// betterStar reports whether a should replace b when both were stored under
// the same key
func betterStar(a, b models.Star) bool {
	if a.HighScore != b.HighScore {
		return a.HighScore > b.HighScore
	}
	return a.CurrentStreak > b.CurrentStreak
}

// mappingFields indexes a mapping node's values by key
func mappingFields(node *yaml.Node) map[string]*yaml.Node {
	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		fields[node.Content[i].Value] = node.Content[i+1]
	}
	return fields
}

// decodeField decodes one field, reporting whether it was present and well formed
func decodeField(fields map[string]*yaml.Node, key string, out interface{}) bool {
	node, ok := fields[key]
	if !ok {
		return false
	}
	if err := node.Decode(out); err != nil {
		log.Printf("[archive] Ignoring malformed field %s: %v", key, err)
		return false
	}
	return true
}
